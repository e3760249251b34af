package dto

import (
	"time"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 请求 DTO ====================

// CreateEventRequest 创建演出请求
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=140"`
	Description string    `json:"description"`
	Location    string    `json:"location" binding:"required"`
	Address     string    `json:"address"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
	ArtistID    int64     `json:"artist_id"`
	TicketPrice float64   `json:"ticket_price"`
	TicketURL   string    `json:"ticket_url"`
}

// UpdateEventRequest 更新演出请求
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Address     *string    `json:"address,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	ArtistID    *int64     `json:"artist_id,omitempty"`
	TicketPrice *float64   `json:"ticket_price,omitempty"`
	TicketURL   *string    `json:"ticket_url,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// ListEventsRequest 演出列表查询
type ListEventsRequest struct {
	Location string `form:"location"`
	Upcoming bool   `form:"upcoming"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// EventVO 演出信息
type EventVO struct {
	ID          int64     `json:"_id"`
	VenueID     int64     `json:"venue_id"`
	ArtistID    int64     `json:"artist_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Address     string    `json:"address,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
	TicketPrice float64   `json:"ticket_price"`
	TicketURL   string    `json:"ticket_url,omitempty"`
	PosterURL   string    `json:"poster_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewEventVO 转换数据库模型为响应结构
func NewEventVO(e *model.Event) *EventVO {
	return &EventVO{
		ID:          e.ID,
		VenueID:     e.VenueID,
		ArtistID:    e.ArtistID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Address:     e.Address,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		TicketPrice: e.GetTicketPrice(),
		TicketURL:   e.TicketURL,
		PosterURL:   e.PosterURL,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
