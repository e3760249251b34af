package service

import (
	"context"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 服务实现 ====================

// AdminService 管理端：账号管理与内容治理
type AdminService struct {
	userRepo   repository.UserRepository
	listingSvc *ListingService
}

// NewAdminService 创建管理服务
func NewAdminService(userRepo repository.UserRepository, listingSvc *ListingService) *AdminService {
	return &AdminService{userRepo: userRepo, listingSvc: listingSvc}
}

// ListUsers pages through platform accounts.
func (s *AdminService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// SetSuspended flips an account's suspension flag. Suspended accounts keep
// their data but cannot sign in.
func (s *AdminService) SetSuspended(ctx context.Context, userID int64, suspended bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"suspended": suspended,
	})
}

// RemoveListing takes down a user's listing and its media, for moderation.
func (s *AdminService) RemoveListing(ctx context.Context, ownerID int64) error {
	return s.listingSvc.Delete(ctx, ownerID)
}
