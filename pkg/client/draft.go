package client

import (
	"fmt"
)

// ==================== 挂牌草稿 ====================

// ListingDraft 页面持有的唯一可变草稿。标量字段直接赋值即可；
// 媒体槽位带不变量（上限、软删除），只能通过方法改动。
type ListingDraft struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Status      string

	photos []PhotoSlot
	video  *PhotoSlot
}

// NewListingDraft 创建空草稿，状态默认 active
func NewListingDraft() *ListingDraft {
	return &ListingDraft{Status: "active"}
}

// NewDraftFromListing 用服务端返回的挂牌填充草稿
func NewDraftFromListing(l *Listing) *ListingDraft {
	d := &ListingDraft{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Status:      l.Status,
	}
	for _, p := range l.Photos {
		d.photos = append(d.photos, PhotoSlot{Media: RemoteRef{URL: p.URL, Filename: p.Filename}})
	}
	if l.Video != "" {
		d.video = &PhotoSlot{Media: RemoteRef{URL: l.Video}}
	}
	return d
}

// ==================== 照片槽位 ====================

// Photos 返回可见槽位的副本，打了删除标记的仍然在列
func (d *ListingDraft) Photos() []PhotoSlot {
	out := make([]PhotoSlot, len(d.photos))
	copy(out, d.photos)
	return out
}

// PhotoCount 可见照片数（含打了删除标记的）
func (d *ListingDraft) PhotoCount() int {
	return len(d.photos)
}

// AddPhotos 追加本地照片。先做类型/大小预检，被拒的逐个返回原因；
// 再按 remaining = 5 - 当前可见数 截断，超出的部分整体报容量错误，
// 能放下的照收。两类错误都不会发出任何网络请求。
func (d *ListingDraft) AddPhotos(files ...LocalFile) ([]FileError, error) {
	var fileErrs []FileError
	var accepted []LocalFile
	for _, f := range files {
		if ferr := checkPhoto(f); ferr != nil {
			fileErrs = append(fileErrs, *ferr)
			continue
		}
		accepted = append(accepted, f)
	}

	remaining := MaxPhotos - len(d.photos)
	if remaining < 0 {
		remaining = 0
	}

	var capErr error
	if len(accepted) > remaining {
		capErr = &CapacityError{
			Kind:      "photo",
			Remaining: remaining,
			Overflow:  len(accepted) - remaining,
		}
		accepted = accepted[:remaining]
	}

	for _, f := range accepted {
		d.photos = append(d.photos, PhotoSlot{Media: f})
	}
	return fileErrs, capErr
}

// RemovePhoto 移除下标 i 的照片。RemoteRef 只打删除标记、保持可见，
// 保存时通知服务端真正删除；LocalFile 从没上传过，直接出列。
func (d *ListingDraft) RemovePhoto(i int) error {
	if i < 0 || i >= len(d.photos) {
		return fmt.Errorf("photo index %d out of range", i)
	}

	switch d.photos[i].Media.(type) {
	case RemoteRef:
		d.photos[i].MarkedForDeletion = true
	case LocalFile:
		d.photos = append(d.photos[:i], d.photos[i+1:]...)
	}
	return nil
}

// DeletedPhotoURLs 打了删除标记的远端照片，按槽位顺序
func (d *ListingDraft) DeletedPhotoURLs() []string {
	var urls []string
	for _, slot := range d.photos {
		if !slot.MarkedForDeletion {
			continue
		}
		if ref, ok := slot.Media.(RemoteRef); ok {
			urls = append(urls, ref.URL)
		}
	}
	return urls
}

// keptPhotoCount 没有删除标记的照片数
func (d *ListingDraft) keptPhotoCount() int {
	n := 0
	for _, slot := range d.photos {
		if !slot.MarkedForDeletion {
			n++
		}
	}
	return n
}

// localPhotos 待上传的本地照片，按槽位顺序
func (d *ListingDraft) localPhotos() []LocalFile {
	var files []LocalFile
	for _, slot := range d.photos {
		if f, ok := slot.Media.(LocalFile); ok {
			files = append(files, f)
		}
	}
	return files
}

// ==================== 视频槽位 ====================

// Video 当前视频槽位的副本，空槽返回 nil
func (d *ListingDraft) Video() *PhotoSlot {
	if d.video == nil {
		return nil
	}
	slot := *d.video
	return &slot
}

// SetVideo 放入本地视频。占用中的槽位报容量错误；
// 打了删除标记的远端视频可以被直接顶掉，服务端会清理旧对象。
func (d *ListingDraft) SetVideo(f LocalFile) error {
	if ferr := checkVideo(f); ferr != nil {
		return ferr
	}
	if d.video != nil && !d.video.MarkedForDeletion {
		return &CapacityError{Kind: "video", Remaining: 0, Overflow: 1}
	}
	d.video = &PhotoSlot{Media: f}
	return nil
}

// RemoveVideo 与 RemovePhoto 同一套语义：远端打标记，本地直接丢
func (d *ListingDraft) RemoveVideo() {
	if d.video == nil {
		return
	}
	switch d.video.Media.(type) {
	case RemoteRef:
		d.video.MarkedForDeletion = true
	case LocalFile:
		d.video = nil
	}
}

// DeleteVideo 保存时是否要求服务端删掉已持久化的视频
func (d *ListingDraft) DeleteVideo() bool {
	if d.video == nil || !d.video.MarkedForDeletion {
		return false
	}
	_, remote := d.video.Media.(RemoteRef)
	return remote
}

// localVideo 待上传的本地视频，没有则返回 nil
func (d *ListingDraft) localVideo() *LocalFile {
	if d.video == nil {
		return nil
	}
	if f, ok := d.video.Media.(LocalFile); ok {
		return &f
	}
	return nil
}

// applyListing 用服务端状态整体替换草稿，本地改动和删除标记全部丢弃
func (d *ListingDraft) applyListing(l *Listing) {
	*d = *NewDraftFromListing(l)
}

// ==================== 校验 ====================

// Validate 提交前的字段校验。失败返回按字段归属的错误表，
// 此时不应发起任何网络请求。
func (d *ListingDraft) Validate(mode SubmitMode) *ValidationError {
	fields := make(map[string]string)

	if d.Title == "" {
		fields["title"] = "title is required"
	}
	if d.Description == "" {
		fields["description"] = "description is required"
	}
	if d.Price <= 0 {
		fields["price"] = "price must be greater than zero"
	}
	if d.Location == "" {
		fields["location"] = "location is required"
	}
	if d.keptPhotoCount() == 0 {
		if mode == ModeCreate {
			fields["photos"] = "at least one photo is required"
		} else {
			fields["photos"] = "a listing must keep at least one photo"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
