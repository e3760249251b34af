package service

import (
	"fmt"
	"strings"
)

// ==================== 常量 ====================

// MediaKind 媒体类型
type MediaKind string

const (
	MediaKindPhoto MediaKind = "photo"
	MediaKindVideo MediaKind = "video"
)

const (
	// 单文件大小上限
	MaxPhotoSize = 10 << 20  // 10 MB
	MaxVideoSize = 200 << 20 // 200 MB
)

// photoContentTypes / videoContentTypes 允许的 MIME 类型
var photoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var videoContentTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/mov":       true,
	"video/avi":       true,
	"video/webm":      true,
}

// ==================== 类型 ====================

// FileInfo describes an incoming upload before its bytes are touched.
type FileInfo struct {
	Name        string
	ContentType string
	Size        int64
}

// RejectedFile names one refused upload and why.
type RejectedFile struct {
	Name   string
	Reason string
}

// CapacityError is returned when an upload batch would push a listing past
// its media slot ceiling. Remaining is how many more files may be added.
type CapacityError struct {
	Kind      MediaKind
	Remaining int
	Overflow  int
}

func (e *CapacityError) Error() string {
	if e.Remaining == 0 {
		return fmt.Sprintf("no %s slots left", e.Kind)
	}
	return fmt.Sprintf("only %d more %s(s) can be added, %d over the limit", e.Remaining, e.Kind, e.Overflow)
}

// ==================== 服务实现 ====================

// MediaService validates incoming media before anything is stored. It does
// no I/O; callers persist the accepted subset themselves.
type MediaService struct{}

// NewMediaService 创建媒体校验服务
func NewMediaService() *MediaService {
	return &MediaService{}
}

// Normalize filters files by MIME allow-list and size ceiling for the given
// kind. Every refused file comes back with a reason naming what was wrong;
// the accepted subset keeps its input order.
func (s *MediaService) Normalize(files []FileInfo, kind MediaKind) (accepted []FileInfo, rejected []RejectedFile) {
	allowed := photoContentTypes
	limit := int64(MaxPhotoSize)
	limitLabel := "10MB"
	if kind == MediaKindVideo {
		allowed = videoContentTypes
		limit = MaxVideoSize
		limitLabel = "200MB"
	}

	for _, f := range files {
		contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
		// 去掉 "video/mp4; codecs=..." 之类的参数
		if idx := strings.Index(contentType, ";"); idx != -1 {
			contentType = strings.TrimSpace(contentType[:idx])
		}

		if !allowed[contentType] {
			rejected = append(rejected, RejectedFile{
				Name:   f.Name,
				Reason: fmt.Sprintf("unsupported %s type %q", kind, contentType),
			})
			continue
		}
		if f.Size > limit {
			rejected = append(rejected, RejectedFile{
				Name:   f.Name,
				Reason: fmt.Sprintf("%s exceeds the %s %s limit", f.Name, limitLabel, kind),
			})
			continue
		}
		accepted = append(accepted, f)
	}

	return accepted, rejected
}

// CheckCapacity verifies that adding count items keeps the total within max.
func (s *MediaService) CheckCapacity(kind MediaKind, current, count, max int) error {
	remaining := max - current
	if remaining < 0 {
		remaining = 0
	}
	if count > remaining {
		return &CapacityError{Kind: kind, Remaining: remaining, Overflow: count - remaining}
	}
	return nil
}
