package model

import (
	"errors"
	"strings"
	"time"
)

// ==================== Constants ====================

const (
	EventStatusScheduled = "scheduled"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// ==================== Models ====================

// Event is a show scheduled by a venue, optionally featuring an artist.
type Event struct {
	BaseModel
	VenueID int64 `gorm:"index;not null" json:"venue_id"`
	Venue   *User `gorm:"foreignKey:VenueID" json:"-"`

	ArtistID int64 `gorm:"index" json:"artist_id,omitempty"`
	Artist   *User `gorm:"foreignKey:ArtistID" json:"-"`

	Title       string    `gorm:"size:140;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:40;index;not null" json:"location"`
	Address     string    `gorm:"size:255" json:"address"`
	StartsAt    time.Time `gorm:"index;not null" json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`

	TicketPriceAmount int64  `gorm:"default:0" json:"-"`
	TicketURL         string `gorm:"size:2048" json:"ticket_url,omitempty"`
	PosterURL         string `gorm:"size:2048" json:"poster_url,omitempty"`

	Status string `gorm:"size:20;index;default:scheduled" json:"status"`

	// 审计字段，由 GORM 回调自动填充
	CreatedBy int64 `gorm:"index" json:"created_by,omitempty"`
	UpdatedBy int64 `json:"updated_by,omitempty"`
}

func (*Event) TableName() string {
	return "events"
}

// ==================== Helpers ====================

// GetTicketPrice returns the ticket price in dollars.
func (e *Event) GetTicketPrice() float64 {
	return float64(e.TicketPriceAmount) / 100
}

// SetTicketPrice stores the ticket price given in dollars.
func (e *Event) SetTicketPrice(price float64) {
	e.TicketPriceAmount = int64(price*100 + 0.5)
}

// IsUpcoming reports whether the event has not started yet.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Status == EventStatusScheduled && e.StartsAt.After(now)
}

// CanSchedule checks the invariants for creating or rescheduling a show.
func (e *Event) CanSchedule() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title is required")
	}
	if !isOneOf(e.Location, ValidLocations) {
		return errors.New("event location must be one of: " + strings.Join(ValidLocations, ", "))
	}
	if e.StartsAt.IsZero() {
		return errors.New("event start time is required")
	}
	if !e.EndsAt.IsZero() && e.EndsAt.Before(e.StartsAt) {
		return errors.New("event cannot end before it starts")
	}
	return nil
}
