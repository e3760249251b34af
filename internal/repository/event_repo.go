package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 接口定义 ====================

var ErrEventNotFound = errors.New("event not found")

// EventRepository 演出仓储接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter EventFilter) ([]model.Event, int64, error)
	ListByVenue(ctx context.Context, venueID int64, page, pageSize int) ([]model.Event, int64, error)
}

// EventFilter 演出查询条件
type EventFilter struct {
	Location     string
	ArtistID     int64
	Status       string
	UpcomingOnly bool
	After        time.Time
	Page         int
	PageSize     int
}

// ==================== 仓储实现 ====================

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepository 创建演出仓储
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *eventRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}

func (r *eventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Event{})

	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.ArtistID != 0 {
		query = query.Where("artist_id = ?", filter.ArtistID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UpcomingOnly {
		after := filter.After
		if after.IsZero() {
			after = time.Now()
		}
		query = query.Where("starts_at > ? AND status = ?", after, model.EventStatusScheduled)
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

	var events []model.Event
	err := query.
		Order("starts_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepo) ListByVenue(ctx context.Context, venueID int64, page, pageSize int) ([]model.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Event{}).Where("venue_id = ?", venueID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var events []model.Event
	err := query.
		Order("starts_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
