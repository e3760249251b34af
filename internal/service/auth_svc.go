package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
)

// ==================== 服务实现 ====================

// AuthService 注册/登录服务
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates an account and returns it with a fresh token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) (*model.User, *dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !model.IsValidRole(req.Role) {
		return nil, nil, model.FieldErrors{"role": "unknown role: " + req.Role}
	}

	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrEmailTaken
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Role:     req.Role,
		Location: req.Location,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, nil, model.FieldErrors{"password": err.Error()}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, resp, nil
}

// Login verifies credentials and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	return s.issueTokens(user)
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	return s.issueTokens(user)
}

// Profile returns the caller's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*model.User, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if len(req.Genres) > 0 {
		updates["genres"] = pq.StringArray(req.Genres)
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(user *model.User) (*dto.AuthResponse, error) {
	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         dto.NewUserVO(user),
	}, nil
}
