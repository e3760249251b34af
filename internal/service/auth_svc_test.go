package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 测试辅助函数 ====================

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewAuthService(repository.NewUserRepository(db)), db
}

func signupReq() *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:     "Delta Queen",
		Email:    "delta@example.com",
		Password: "hunter2hunter2",
		Role:     model.RoleArtist,
		Location: model.LocationLouisiana,
	}
}

// ==================== Register 测试 ====================

func TestAuthService_Register(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, resp, err := svc.Register(ctx, signupReq())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("用户未落库")
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Error("密码以明文存储")
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("未返回 Token 对")
	}

	// 签出的 Token 要能解析回同一用户
	claims, err := middleware.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Subject != "access" {
		t.Errorf("claims.Subject = %s, want access", claims.Subject)
	}
}

func TestAuthService_Register_EmailNormalized(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	req := signupReq()
	req.Email = "  Delta@Example.COM "
	user, _, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "delta@example.com" {
		t.Errorf("Email = %s, want delta@example.com", user.Email)
	}

	// 大小写变体视为同一邮箱
	req2 := signupReq()
	req2.Email = "DELTA@example.com"
	if _, _, err := svc.Register(ctx, req2); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("重复注册 error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, role := range []string{"promoter", "admin", ""} {
		req := signupReq()
		req.Role = role
		_, _, err := svc.Register(context.Background(), req)

		var fieldErrs model.FieldErrors
		if !errors.As(err, &fieldErrs) {
			t.Errorf("role=%q: error = %v, want FieldErrors", role, err)
		}
	}
}

// ==================== Login 测试 ====================

func TestAuthService_Login(t *testing.T) {
	svc, db := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, signupReq()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "正确凭证", email: "delta@example.com", password: "hunter2hunter2"},
		{name: "邮箱大小写不敏感", email: "Delta@Example.com", password: "hunter2hunter2"},
		{name: "密码错误", email: "delta@example.com", password: "wrong-password", wantErr: ErrInvalidCredentials},
		{name: "用户不存在", email: "ghost@example.com", password: "hunter2hunter2", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, &dto.SigninRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.Token == "" {
				t.Error("未返回 Token")
			}
		})
	}

	// 封禁账号不能登录
	db.Model(&model.User{}).Where("email = ?", "delta@example.com").Update("suspended", true)
	_, err := svc.Login(ctx, &dto.SigninRequest{Email: "delta@example.com", Password: "hunter2hunter2"})
	if !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("封禁账号 Login() error = %v, want ErrAccountSuspended", err)
	}
}

// ==================== Refresh 测试 ====================

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, resp, err := svc.Register(ctx, signupReq())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	renewed, err := svc.Refresh(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if renewed.Token == "" || renewed.RefreshToken == "" {
		t.Error("未返回新 Token 对")
	}

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.Refresh(ctx, resp.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("用 Access Token 刷新 error = %v, want ErrInvalidCredentials", err)
	}

	if _, err := svc.Refresh(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("非法 Token 刷新 error = %v, want ErrInvalidCredentials", err)
	}
}

// ==================== UpdateProfile 测试 ====================

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, signupReq())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	bio := "Blues from the bayou"
	loc := model.LocationMississippi
	updated, err := svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{
		Bio:      &bio,
		Location: &loc,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Bio != bio {
		t.Errorf("Bio = %s, want %s", updated.Bio, bio)
	}
	if updated.Location != loc {
		t.Errorf("Location = %s, want %s", updated.Location, loc)
	}
	// 未提交的字段保持原样
	if updated.Name != "Delta Queen" {
		t.Errorf("Name 被意外改动: %s", updated.Name)
	}
}
