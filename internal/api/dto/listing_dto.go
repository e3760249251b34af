package dto

import (
	"time"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 请求 DTO ====================

// ListingForm carries the scalar multipart fields of a create/update
// request. Files ("photos", "video") and the indexed "deletedPhotos[i]"
// keys are pulled out of the multipart form by the controller.
type ListingForm struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Price       float64 `form:"price"`
	Location    string  `form:"location"`
	Status      string  `form:"status"`

	// update only
	DeleteVideo bool `form:"deleteVideo"`
}

// ==================== 响应 DTO ====================

// PhotoVO is one persisted listing photo on the wire.
type PhotoVO struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// ListingVO mirrors the listing wire shape the web client consumes.
type ListingVO struct {
	ID          int64     `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Photos      []PhotoVO `json:"photos"`
	Video       string    `json:"video,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewListingVO 转换数据库模型为响应结构
func NewListingVO(l *model.Listing) *ListingVO {
	photos := make([]PhotoVO, len(l.Photos))
	for i, p := range l.Photos {
		photos[i] = PhotoVO{URL: p.URL, Filename: p.Filename}
	}

	return &ListingVO{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.GetPrice(),
		Location:    l.Location,
		Status:      l.Status,
		Photos:      photos,
		Video:       l.VideoURL,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// MediaWarning reports one refused upload inside an otherwise successful
// create/update response.
type MediaWarning struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}
