package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{
		authSvc: authSvc,
	}
}

// Signup 注册
// @Summary 注册账号
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册参数"
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	_, resp, err := c.authSvc.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.Token)
	respondCreated(ctx, "account created", resp)
}

// Signin 登录
// @Summary 登录
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "登录参数"
// @Router /api/auth/signin [post]
func (c *AuthController) Signin(ctx *gin.Context) {
	var req dto.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	resp, err := c.authSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.Token)
	respondOK(ctx, "signed in", resp)
}

// Signout 登出，清掉会话 Cookie
// @Summary 登出
// @Tags Auth (认证)
// @Router /api/auth/signout [post]
func (c *AuthController) Signout(ctx *gin.Context) {
	ctx.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	respondOK(ctx, "signed out", nil)
}

// Refresh 刷新 Token
// @Summary 刷新 Token
// @Tags Auth (认证)
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	resp, err := c.authSvc.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.Token)
	respondOK(ctx, "token refreshed", resp)
}

// Me 当前用户资料
// @Summary 当前用户
// @Tags Auth (认证)
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authSvc.Profile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", dto.NewUserVO(user))
}

// UpdateProfile 更新资料
// @Summary 更新个人资料
// @Tags Auth (认证)
// @Router /api/auth/me [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	user, err := c.authSvc.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "profile updated", dto.NewUserVO(user))
}

// setSessionCookie 浏览器客户端用 Cookie 维持会话
func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.TokenCookieName, token, int((2 * 60 * 60)), "/", "", false, true)
}
