package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 仓储接口 ====================

// MediaRepository 对象存储台账
type MediaRepository interface {
	Record(ctx context.Context, url, kind string) error
	Forget(ctx context.Context, url string) error
	// ListOrphans 返回没有任何挂牌引用、且落账早于 olderThan 的对象
	ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]model.MediaObject, error)
	Remove(ctx context.Context, id int64) error
}

// ==================== 仓储实现 ====================

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepository 创建媒体台账仓储
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Record(ctx context.Context, url, kind string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoNothing: true,
		}).
		Create(&model.MediaObject{URL: url, Kind: kind}).Error
}

func (r *mediaRepo) Forget(ctx context.Context, url string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("url = ?", url).
		Delete(&model.MediaObject{}).Error
}

func (r *mediaRepo) ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]model.MediaObject, error) {
	var orphans []model.MediaObject
	err := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("url NOT IN (?)", r.db.Model(&model.ListingPhoto{}).Select("url")).
		Where("url NOT IN (?)", r.db.Model(&model.Listing{}).Select("video_url").Where("video_url <> ''")).
		Limit(limit).
		Find(&orphans).Error
	return orphans, err
}

func (r *mediaRepo) Remove(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.MediaObject{}, id).Error
}
