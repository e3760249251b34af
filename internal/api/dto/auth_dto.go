package dto

import "github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"

// ==================== 请求 DTO ====================

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	Location string `json:"location"`
}

// SigninRequest 登录请求
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty"`
	Bio      *string  `json:"bio,omitempty"`
	Location *string  `json:"location,omitempty"`
	Genres   []string `json:"genres,omitempty"`
}

// ==================== 响应 DTO ====================

// UserVO 用户信息
type UserVO struct {
	ID       int64    `json:"_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Bio      string   `json:"bio,omitempty"`
	Location string   `json:"location,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	PhotoURL string   `json:"photo_url,omitempty"`
}

// NewUserVO 转换数据库模型为响应结构
func NewUserVO(u *model.User) *UserVO {
	return &UserVO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Bio:      u.Bio,
		Location: u.Location,
		Genres:   []string(u.Genres),
		PhotoURL: u.PhotoURL,
	}
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refresh_token"`
	User         *UserVO `json:"user"`
}
