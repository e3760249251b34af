package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 外部服务依赖 ====================

// StorageUploader 存储服务接口
type StorageUploader interface {
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// ==================== 类型 ====================

// MediaUpload is one incoming file with its bytes already read.
type MediaUpload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

func (u *MediaUpload) fileInfo() FileInfo {
	return FileInfo{Name: u.Name, ContentType: u.ContentType, Size: u.Size}
}

// ==================== 服务实现 ====================

// ListingService 扬声器/乐器挂牌服务
// 每个 artist 同时只有一个 listing（单例约束在仓储层兜底）。
type ListingService struct {
	listingRepo repository.ListingRepository
	media       *MediaService
	storage     StorageUploader
}

// NewListingService 创建挂牌服务
func NewListingService(listingRepo repository.ListingRepository, media *MediaService, storage StorageUploader) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		media:       media,
		storage:     storage,
	}
}

// ==================== 查询 ====================

// GetMine returns the caller's listing, or repository.ErrListingNotFound.
func (s *ListingService) GetMine(ctx context.Context, userID int64) (*model.Listing, error) {
	return s.listingRepo.GetByUserID(ctx, userID)
}

// Browse 公开的挂牌列表（粉丝/管理端）
func (s *ListingService) Browse(ctx context.Context, filter repository.ListingFilter) ([]model.Listing, int64, error) {
	if filter.Status == "" {
		filter.Status = model.ListingStatusActive
	}
	return s.listingRepo.List(ctx, filter)
}

// ==================== 创建 ====================

// Create validates and persists a brand new listing for userID. Photos are
// filtered through the media normalizer first; refused files come back as
// warnings rather than failing the whole request. Validation failures abort
// before any byte reaches storage.
func (s *ListingService) Create(ctx context.Context, userID int64, form *dto.ListingForm, photos []*MediaUpload, video *MediaUpload) (*model.Listing, []dto.MediaWarning, error) {
	accepted, warnings := s.screenPhotos(photos, 0)

	listing := &model.Listing{
		UserID:      userID,
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Location:    form.Location,
		Status:      form.Status,
	}
	if listing.Status == "" {
		listing.Status = model.ListingStatusActive
	}
	listing.SetPrice(form.Price)

	errs := model.FieldErrors{}
	if err := listing.Validate(); err != nil {
		errs = err.(model.FieldErrors)
	}
	if len(accepted) == 0 {
		errs["photos"] = "at least one photo is required"
	}
	if len(errs) > 0 {
		return nil, warnings, errs
	}

	video, videoWarnings := s.screenVideo(video)
	warnings = append(warnings, videoWarnings...)

	// 校验全部通过后才开始上传
	uploaded, err := s.uploadPhotos(ctx, accepted)
	if err != nil {
		return nil, warnings, err
	}
	listing.Photos = uploaded

	if video != nil {
		url, err := s.storage.Upload(ctx, video.Data, video.Name, video.ContentType)
		if err != nil {
			s.discardUploads(ctx, listing.Photos, "")
			return nil, warnings, fmt.Errorf("video upload failed: %v", err)
		}
		listing.VideoURL = url
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.discardUploads(ctx, listing.Photos, listing.VideoURL)
		return nil, warnings, err
	}

	return listing, warnings, nil
}

// ==================== 更新 ====================

// Update applies a diff-style edit to the caller's listing: scalar fields
// are replaced, deletedPhotos entries that actually belong to the listing
// are dropped, new uploads fill the remaining slots, and the single video
// slot is replaced or cleared. Storage objects for removed media are
// deleted best-effort after the row is saved; the media sweeper picks up
// anything left behind.
func (s *ListingService) Update(ctx context.Context, userID int64, form *dto.ListingForm, newPhotos []*MediaUpload, newVideo *MediaUpload, deletedPhotos []string) (*model.Listing, []dto.MediaWarning, error) {
	listing, err := s.listingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// 只删除确实属于该 listing 的引用
	toDelete := make(map[string]bool)
	for _, url := range deletedPhotos {
		if listing.HasPhoto(url) {
			toDelete[url] = true
		}
	}

	kept := make([]model.ListingPhoto, 0, len(listing.Photos))
	removedURLs := make([]string, 0, len(toDelete))
	for _, p := range listing.Photos {
		if toDelete[p.URL] {
			removedURLs = append(removedURLs, p.URL)
			continue
		}
		kept = append(kept, p)
	}

	accepted, warnings := s.screenPhotos(newPhotos, len(kept))

	listing.Title = strings.TrimSpace(form.Title)
	listing.Description = strings.TrimSpace(form.Description)
	listing.Location = form.Location
	if form.Status != "" {
		listing.Status = form.Status
	}
	listing.SetPrice(form.Price)

	errs := model.FieldErrors{}
	if err := listing.Validate(); err != nil {
		errs = err.(model.FieldErrors)
	}
	if len(kept)+len(accepted) == 0 {
		errs["photos"] = "at least one photo is required"
	}
	if len(errs) > 0 {
		return nil, warnings, errs
	}

	newVideo, videoWarnings := s.screenVideo(newVideo)
	warnings = append(warnings, videoWarnings...)

	uploaded, err := s.uploadPhotos(ctx, accepted)
	if err != nil {
		return nil, warnings, err
	}

	oldVideoURL := ""
	newVideoURL := ""
	switch {
	case newVideo != nil:
		url, err := s.storage.Upload(ctx, newVideo.Data, newVideo.Name, newVideo.ContentType)
		if err != nil {
			s.discardUploads(ctx, uploaded, "")
			return nil, warnings, fmt.Errorf("video upload failed: %v", err)
		}
		oldVideoURL = listing.VideoURL
		newVideoURL = url
		listing.VideoURL = url
	case form.DeleteVideo:
		oldVideoURL = listing.VideoURL
		listing.VideoURL = ""
	}

	finalPhotos := append(kept, uploaded...)

	err = s.listingRepo.Transaction(ctx, func(txRepo repository.ListingRepository) error {
		if err := txRepo.UpdateFields(ctx, listing.ID, map[string]interface{}{
			"title":         listing.Title,
			"description":   listing.Description,
			"price_amount":  listing.PriceAmount,
			"price_divisor": listing.PriceDivisor,
			"location":      listing.Location,
			"status":        listing.Status,
			"video_url":     listing.VideoURL,
		}); err != nil {
			return err
		}
		return txRepo.ReplacePhotos(ctx, listing.ID, finalPhotos)
	})
	if err != nil {
		// 刚换上的视频也要一并回收
		s.discardUploads(ctx, uploaded, newVideoURL)
		return nil, warnings, err
	}

	// 数据库已落盘，对象存储清理失败只记日志
	for _, url := range removedURLs {
		if err := s.storage.Delete(ctx, url); err != nil {
			log.Printf("[Listing] failed to delete photo object %s: %v", url, err)
		}
	}
	if oldVideoURL != "" {
		if err := s.storage.Delete(ctx, oldVideoURL); err != nil {
			log.Printf("[Listing] failed to delete video object %s: %v", oldVideoURL, err)
		}
	}

	fresh, err := s.listingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, warnings, err
	}
	return fresh, warnings, nil
}

// ==================== 删除 ====================

// Delete removes the caller's listing and its media.
func (s *ListingService) Delete(ctx context.Context, userID int64) error {
	listing, err := s.listingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
		return err
	}

	for _, p := range listing.Photos {
		if err := s.storage.Delete(ctx, p.URL); err != nil {
			log.Printf("[Listing] failed to delete photo object %s: %v", p.URL, err)
		}
	}
	if listing.VideoURL != "" {
		if err := s.storage.Delete(ctx, listing.VideoURL); err != nil {
			log.Printf("[Listing] failed to delete video object %s: %v", listing.VideoURL, err)
		}
	}

	return nil
}

// ==================== 辅助函数 ====================

// screenPhotos runs the media normalizer and the slot ceiling over a batch
// of new photos. Files past the remaining slot count are refused with a
// capacity warning naming the overflow, matching the web client's behavior.
func (s *ListingService) screenPhotos(photos []*MediaUpload, currentCount int) ([]*MediaUpload, []dto.MediaWarning) {
	infos := make([]FileInfo, len(photos))
	for i, p := range photos {
		infos[i] = p.fileInfo()
	}

	var warnings []dto.MediaWarning

	accepted := make([]*MediaUpload, 0, len(photos))
	acceptedInfos, rejected := s.media.Normalize(infos, MediaKindPhoto)
	for _, r := range rejected {
		warnings = append(warnings, dto.MediaWarning{File: r.Name, Reason: r.Reason})
	}

	// Normalize keeps input order, so we can walk both slices in step.
	idx := 0
	for i, p := range photos {
		if idx < len(acceptedInfos) && acceptedInfos[idx] == infos[i] {
			accepted = append(accepted, p)
			idx++
		}
	}

	if err := s.media.CheckCapacity(MediaKindPhoto, currentCount, len(accepted), model.MaxListingPhotos); err != nil {
		capErr := err.(*CapacityError)
		for _, p := range accepted[capErr.Remaining:] {
			warnings = append(warnings, dto.MediaWarning{File: p.Name, Reason: capErr.Error()})
		}
		accepted = accepted[:capErr.Remaining]
	}

	return accepted, warnings
}

// screenVideo validates the single optional video upload.
func (s *ListingService) screenVideo(video *MediaUpload) (*MediaUpload, []dto.MediaWarning) {
	if video == nil {
		return nil, nil
	}
	accepted, rejected := s.media.Normalize([]FileInfo{video.fileInfo()}, MediaKindVideo)
	if len(accepted) == 0 {
		warnings := make([]dto.MediaWarning, 0, 1)
		for _, r := range rejected {
			warnings = append(warnings, dto.MediaWarning{File: r.Name, Reason: r.Reason})
		}
		return nil, warnings
	}
	return video, nil
}

func (s *ListingService) uploadPhotos(ctx context.Context, photos []*MediaUpload) ([]model.ListingPhoto, error) {
	uploaded := make([]model.ListingPhoto, 0, len(photos))
	for _, p := range photos {
		url, err := s.storage.Upload(ctx, p.Data, p.Name, p.ContentType)
		if err != nil {
			s.discardUploads(ctx, uploaded, "")
			return nil, fmt.Errorf("photo upload failed: %v", err)
		}
		uploaded = append(uploaded, model.ListingPhoto{URL: url, Filename: p.Name})
	}
	return uploaded, nil
}

// discardUploads rolls back already-stored objects after a later failure.
func (s *ListingService) discardUploads(ctx context.Context, photos []model.ListingPhoto, videoURL string) {
	for _, p := range photos {
		if err := s.storage.Delete(ctx, p.URL); err != nil {
			log.Printf("[Listing] failed to discard upload %s: %v", p.URL, err)
		}
	}
	if videoURL != "" {
		if err := s.storage.Delete(ctx, videoURL); err != nil {
			log.Printf("[Listing] failed to discard upload %s: %v", videoURL, err)
		}
	}
}
