package client

import (
	"fmt"
	"strings"
)

// ==================== 媒体引用 ====================

// MediaRef 照片/视频引用的标签联合：要么是服务端已持久化的 URL，
// 要么是本地待上传的文件。消费方必须类型断言，不存在第三种情况。
type MediaRef interface {
	mediaRef()
}

// RemoteRef 服务端已持久化的媒体
type RemoteRef struct {
	URL      string
	Filename string
}

func (RemoteRef) mediaRef() {}

// LocalFile 本地新选的文件，尚未上传
type LocalFile struct {
	Name string
	MIME string
	Data []byte
}

func (LocalFile) mediaRef() {}

// PhotoSlot 一个媒体槽位。RemoteRef 被移除时只打标记不出列，
// 保存时再通知服务端删除；LocalFile 没持久化过，直接丢弃即可。
type PhotoSlot struct {
	Media             MediaRef
	MarkedForDeletion bool
}

// ==================== 槽位上限 ====================

const (
	// MaxPhotos 照片槽位上限
	MaxPhotos = 5
	// MaxVideos 视频槽位上限
	MaxVideos = 1
)

// ==================== 客户端预检 ====================
//
// 与服务端的校验规则保持一致，在选文件时就把明显不合法的挡掉。

const (
	maxPhotoSize = 10 << 20  // 10 MB
	maxVideoSize = 200 << 20 // 200 MB
)

var photoMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var videoMIMEs = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/mov":       true,
	"video/avi":       true,
	"video/webm":      true,
}

// checkPhoto 校验单张照片，通过返回 nil
func checkPhoto(f LocalFile) *FileError {
	return checkFile(f, photoMIMEs, maxPhotoSize, "photo", "10MB")
}

// checkVideo 校验视频文件
func checkVideo(f LocalFile) *FileError {
	return checkFile(f, videoMIMEs, maxVideoSize, "video", "200MB")
}

func checkFile(f LocalFile, allowed map[string]bool, limit int, kind, limitLabel string) *FileError {
	mime := strings.ToLower(strings.TrimSpace(f.MIME))
	// 去掉 "video/mp4; codecs=..." 之类的参数
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}

	if !allowed[mime] {
		return &FileError{
			Name:   f.Name,
			Reason: fmt.Sprintf("unsupported %s type %q", kind, mime),
		}
	}
	if len(f.Data) > limit {
		return &FileError{
			Name:   f.Name,
			Reason: fmt.Sprintf("%s exceeds the %s size limit", kind, limitLabel),
		}
	}
	return nil
}
