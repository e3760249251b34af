package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 接口定义 ====================

var ErrArticleNotFound = errors.New("article not found")

// NewsRepository 新闻仓储接口
type NewsRepository interface {
	Create(ctx context.Context, article *model.NewsArticle) error
	GetByID(ctx context.Context, id int64) (*model.NewsArticle, error)
	GetBySlug(ctx context.Context, slug string) (*model.NewsArticle, error)
	Update(ctx context.Context, article *model.NewsArticle) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter NewsFilter) ([]model.NewsArticle, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// NewsFilter 新闻查询条件
type NewsFilter struct {
	AuthorID      int64
	Status        string
	Tag           string
	PublishedOnly bool
	Page          int
	PageSize      int
}

// ==================== 仓储实现 ====================

type newsRepo struct {
	db *gorm.DB
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepo{db: db}
}

func (r *newsRepo) Create(ctx context.Context, article *model.NewsArticle) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *newsRepo) GetByID(ctx context.Context, id int64) (*model.NewsArticle, error) {
	var article model.NewsArticle
	err := r.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *newsRepo) GetBySlug(ctx context.Context, slug string) (*model.NewsArticle, error) {
	var article model.NewsArticle
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *newsRepo) Update(ctx context.Context, article *model.NewsArticle) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *newsRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.NewsArticle{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *newsRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.NewsArticle{}, id).Error
}

func (r *newsRepo) List(ctx context.Context, filter NewsFilter) ([]model.NewsArticle, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.NewsArticle{})

	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PublishedOnly {
		query = query.Where("status = ?", model.ArticleStatusPublished)
	}
	if filter.Tag != "" {
		// Postgres array membership; sqlite test runs filter by LIKE fallback
		if r.db.Dialector.Name() == "postgres" {
			query = query.Where("? = ANY(tags)", filter.Tag)
		} else {
			query = query.Where("tags LIKE ?", "%"+filter.Tag+"%")
		}
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

	var articles []model.NewsArticle
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *newsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NewsArticle{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}
