package model

import (
	"sort"
	"strings"
)

// ==================== Constants ====================

const (
	// Listing状态
	ListingStatusActive   = "active"
	ListingStatusDraft    = "draft"
	ListingStatusSold     = "sold"
	ListingStatusReserved = "reserved"

	// 每个 listing 的媒体上限
	MaxListingPhotos = 5
	MaxListingVideos = 1
)

// 平台覆盖的湾区州
const (
	LocationLouisiana   = "Louisiana"
	LocationMississippi = "Mississippi"
	LocationAlabama     = "Alabama"
	LocationFlorida     = "Florida"
)

var ValidLocations = []string{LocationLouisiana, LocationMississippi, LocationAlabama, LocationFlorida}

var ValidListingStatuses = []string{ListingStatusActive, ListingStatusDraft, ListingStatusSold, ListingStatusReserved}

// ==================== Field Errors ====================

// FieldErrors is a field-keyed validation error map. Controllers return it
// under the "errors" key so forms can render messages inline.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(e))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ==================== Models ====================

// Listing is a marketplace gear listing. Each artist owns at most one
// listing at a time, enforced by the unique index on user_id.
type Listing struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	Title       string `gorm:"size:140;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Price stored as amount/divisor to avoid floating point drift
	PriceAmount  int64 `gorm:"default:0" json:"-"`
	PriceDivisor int64 `gorm:"default:100" json:"-"`

	Location string `gorm:"size:40;index;not null" json:"location"`
	Status   string `gorm:"size:20;index;default:active" json:"status"`

	Photos   []ListingPhoto `gorm:"foreignKey:ListingID" json:"photos"`
	VideoURL string         `gorm:"size:2048" json:"video,omitempty"`
}

func (*Listing) TableName() string {
	return "listings"
}

// ListingPhoto is one persisted photo slot, ordered by Position.
type ListingPhoto struct {
	BaseModel
	ListingID int64    `gorm:"index;not null" json:"-"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL      string `gorm:"size:2048;not null" json:"url"`
	Filename string `gorm:"size:255" json:"filename,omitempty"`
	Position int    `gorm:"default:0" json:"position"`
}

func (*ListingPhoto) TableName() string {
	return "listing_photos"
}

// ==================== Helpers ====================

// GetPrice 获取价格（浮点数）
func (l *Listing) GetPrice() float64 {
	if l.PriceDivisor == 0 {
		l.PriceDivisor = 100
	}
	return float64(l.PriceAmount) / float64(l.PriceDivisor)
}

// SetPrice 设置价格（浮点数）
func (l *Listing) SetPrice(price float64) {
	l.PriceDivisor = 100
	l.PriceAmount = int64(price*100 + 0.5)
}

// HasPhoto reports whether url is one of the listing's persisted photos.
func (l *Listing) HasPhoto(url string) bool {
	for _, p := range l.Photos {
		if p.URL == url {
			return true
		}
	}
	return false
}

// Validate checks the scalar invariants every saved listing must hold.
// Photo slot counts are enforced by the service before any upload happens.
// It returns a FieldErrors map naming each offending field.
func (l *Listing) Validate() error {
	errs := FieldErrors{}

	if strings.TrimSpace(l.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(l.Description) == "" {
		errs["description"] = "description is required"
	}
	if l.PriceAmount <= 0 {
		errs["price"] = "price must be greater than zero"
	}
	if !isOneOf(l.Location, ValidLocations) {
		errs["location"] = "location must be one of: " + strings.Join(ValidLocations, ", ")
	}
	if !isOneOf(l.Status, ValidListingStatuses) {
		errs["status"] = "status must be one of: " + strings.Join(ValidListingStatuses, ", ")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isOneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}
