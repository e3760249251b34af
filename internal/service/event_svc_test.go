package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 测试辅助函数 ====================

func newTestEventService(t *testing.T) (*EventService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Event{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewEventService(repository.NewEventRepository(db), repository.NewUserRepository(db)), db
}

func eventReq() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:       "Blues Night",
		Location:    model.LocationAlabama,
		Address:     "123 Dauphin St, Mobile",
		StartsAt:    time.Now().Add(48 * time.Hour),
		TicketPrice: 25,
	}
}

// ==================== Create 测试 ====================

func TestEventService_Create(t *testing.T) {
	svc, _ := newTestEventService(t)

	event, err := svc.Create(context.Background(), 10, eventReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if event.VenueID != 10 {
		t.Errorf("VenueID = %d, want 10", event.VenueID)
	}
	if event.Status != model.EventStatusScheduled {
		t.Errorf("Status = %s, want scheduled", event.Status)
	}
	if got := event.GetTicketPrice(); got != 25 {
		t.Errorf("GetTicketPrice() = %v, want 25", got)
	}
}

func TestEventService_Create_Validation(t *testing.T) {
	svc, _ := newTestEventService(t)
	ctx := context.Background()

	req := eventReq()
	req.Location = "Nevada"
	if _, err := svc.Create(ctx, 10, req); err == nil {
		t.Error("湾区以外的地点应被拒绝")
	}

	req = eventReq()
	req.EndsAt = req.StartsAt.Add(-time.Hour)
	if _, err := svc.Create(ctx, 10, req); err == nil {
		t.Error("结束早于开始应被拒绝")
	}

	// 关联不存在的艺人
	req = eventReq()
	req.ArtistID = 404
	_, err := svc.Create(ctx, 10, req)
	var fieldErrs model.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Errorf("error = %v, want FieldErrors", err)
	}
}

func TestEventService_Create_LinkedArtistMustBeArtist(t *testing.T) {
	svc, db := newTestEventService(t)
	ctx := context.Background()

	fan := &model.User{Name: "Just A Fan", Email: "fan@example.com", Role: model.RoleFan, PasswordHash: "x"}
	db.Create(fan)

	req := eventReq()
	req.ArtistID = fan.ID
	var fieldErrs model.FieldErrors
	if _, err := svc.Create(ctx, 10, req); !errors.As(err, &fieldErrs) {
		t.Errorf("error = %v, want FieldErrors", err)
	}

	artist := &model.User{Name: "Real Artist", Email: "artist@example.com", Role: model.RoleArtist, PasswordHash: "x"}
	db.Create(artist)

	req.ArtistID = artist.ID
	if _, err := svc.Create(ctx, 10, req); err != nil {
		t.Errorf("关联艺人 Create() error = %v", err)
	}
}

// ==================== Update / Cancel 测试 ====================

func TestEventService_OwnershipGuard(t *testing.T) {
	svc, _ := newTestEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, 10, eventReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "Hijacked"
	if _, err := svc.Update(ctx, 11, event.ID, &dto.UpdateEventRequest{Title: &title}); !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("他人 Update() error = %v, want ErrNotEventOwner", err)
	}
	if err := svc.Cancel(ctx, 11, event.ID); !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("他人 Cancel() error = %v, want ErrNotEventOwner", err)
	}
}

func TestEventService_Cancel(t *testing.T) {
	svc, _ := newTestEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, 10, eventReq())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Cancel(ctx, 10, event.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	got, err := svc.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != model.EventStatusCancelled {
		t.Errorf("Status = %s, want cancelled", got.Status)
	}

	// 取消的演出不出现在公开列表
	events, _, err := svc.Browse(ctx, &dto.ListEventsRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	for _, e := range events {
		if e.ID == event.ID {
			t.Error("已取消的演出出现在公开列表")
		}
	}
}

// ==================== Browse 测试 ====================

func TestEventService_Browse_UpcomingOnly(t *testing.T) {
	svc, db := newTestEventService(t)
	ctx := context.Background()

	past := &model.Event{
		VenueID:  10,
		Title:    "Last Month",
		Location: model.LocationFlorida,
		StartsAt: time.Now().Add(-30 * 24 * time.Hour),
		Status:   model.EventStatusScheduled,
	}
	db.Create(past)

	if _, err := svc.Create(ctx, 10, eventReq()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	events, total, err := svc.Browse(ctx, &dto.ListEventsRequest{Upcoming: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("total = %d, len = %d, want 1", total, len(events))
	}
	if events[0].Title != "Blues Night" {
		t.Errorf("返回了过期演出: %s", events[0].Title)
	}
}
