package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 错误定义 ====================

var ErrNotEventOwner = errors.New("event belongs to another venue")

// ==================== 服务实现 ====================

// EventService 演出日程服务
type EventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

// NewEventService 创建演出服务
func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{eventRepo: eventRepo, userRepo: userRepo}
}

// Create schedules a show for the venue.
func (s *EventService) Create(ctx context.Context, venueID int64, req *dto.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		VenueID:     venueID,
		ArtistID:    req.ArtistID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Address:     req.Address,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		TicketURL:   req.TicketURL,
		Status:      model.EventStatusScheduled,
	}
	event.SetTicketPrice(req.TicketPrice)

	if err := event.CanSchedule(); err != nil {
		return nil, err
	}

	// 关联的艺人必须真实存在
	if req.ArtistID != 0 {
		artist, err := s.userRepo.GetByID(ctx, req.ArtistID)
		if err != nil {
			return nil, model.FieldErrors{"artist_id": "artist not found"}
		}
		if !artist.HasRole(model.RoleArtist) {
			return nil, model.FieldErrors{"artist_id": "linked account is not an artist"}
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update modifies the venue's own event.
func (s *EventService) Update(ctx context.Context, venueID, eventID int64, req *dto.UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.VenueID != venueID {
		return nil, ErrNotEventOwner
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.ArtistID != nil {
		event.ArtistID = *req.ArtistID
	}
	if req.TicketPrice != nil {
		event.SetTicketPrice(*req.TicketPrice)
	}
	if req.TicketURL != nil {
		event.TicketURL = *req.TicketURL
	}
	if req.Status != nil {
		event.Status = *req.Status
	}

	if err := event.CanSchedule(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Cancel marks the venue's own event as cancelled.
func (s *EventService) Cancel(ctx context.Context, venueID, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.VenueID != venueID {
		return ErrNotEventOwner
	}

	return s.eventRepo.UpdateFields(ctx, eventID, map[string]interface{}{
		"status": model.EventStatusCancelled,
	})
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, eventID int64) (*model.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

// Browse lists public events, upcoming shows first.
func (s *EventService) Browse(ctx context.Context, req *dto.ListEventsRequest) ([]model.Event, int64, error) {
	filter := repository.EventFilter{
		Location:     req.Location,
		Status:       model.EventStatusScheduled,
		UpcomingOnly: req.Upcoming,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	if req.Upcoming {
		filter.After = time.Now()
	}
	return s.eventRepo.List(ctx, filter)
}

// Mine lists all of the venue's events regardless of status.
func (s *EventService) Mine(ctx context.Context, venueID int64, page, pageSize int) ([]model.Event, int64, error) {
	return s.eventRepo.ListByVenue(ctx, venueID, page, pageSize)
}
