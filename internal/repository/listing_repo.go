package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 接口定义 ====================

// ErrListingNotFound is returned when the owner has no listing yet.
var ErrListingNotFound = errors.New("listing not found")

// ErrListingExists is returned when a second listing is created for the
// same owner. Each artist holds at most one listing.
var ErrListingExists = errors.New("listing already exists for this user")

// ListingRepository 商品挂牌仓储接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Listing, error)
	Update(ctx context.Context, listing *model.Listing) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListingFilter) ([]model.Listing, int64, error)

	// 图片操作
	ReplacePhotos(ctx context.Context, listingID int64, photos []model.ListingPhoto) error

	// 事务
	WithTx(tx *gorm.DB) ListingRepository
	Transaction(ctx context.Context, fn func(txRepo ListingRepository) error) error
}

// ==================== 过滤条件 ====================

// ListingFilter 挂牌查询条件
type ListingFilter struct {
	Location string
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建挂牌仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	// The unique index on user_id backs this check, but probing first gives
	// the caller a typed error instead of a driver-specific one.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("user_id = ?", listing.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrListingExists
	}
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) GetByUserID(ctx context.Context, userID int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) Update(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *listingRepo) Delete(ctx context.Context, id int64) error {
	// 硬删除：软删除的行会占住 user_id 唯一索引，挡住重新挂牌
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("listing_id = ?", id).Delete(&model.ListingPhoto{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Listing{}, id).Error
	})
}

func (r *listingRepo) List(ctx context.Context, filter ListingFilter) ([]model.Listing, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Listing{})

	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var listings []model.Listing
	err := query.
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// ReplacePhotos swaps the listing's photo rows for the given ordered set.
func (r *listingRepo) ReplacePhotos(ctx context.Context, listingID int64, photos []model.ListingPhoto) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("listing_id = ?", listingID).Delete(&model.ListingPhoto{}).Error; err != nil {
			return err
		}
		for i := range photos {
			photos[i].ID = 0
			photos[i].ListingID = listingID
			photos[i].Position = i
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.Create(&photos).Error
	})
}

func (r *listingRepo) WithTx(tx *gorm.DB) ListingRepository {
	return &listingRepo{db: tx}
}

func (r *listingRepo) Transaction(ctx context.Context, fn func(txRepo ListingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&listingRepo{db: tx})
	})
}
