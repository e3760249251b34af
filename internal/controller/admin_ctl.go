package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type AdminController struct {
	adminSvc *service.AdminService
}

func NewAdminController(adminSvc *service.AdminService) *AdminController {
	return &AdminController{
		adminSvc: adminSvc,
	}
}

// ListUsers 账号列表
// @Summary 账号列表
// @Tags Admin (管理端)
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	users, total, err := c.adminSvc.ListUsers(ctx.Request.Context(), repository.UserFilter{
		Role:     ctx.Query("role"),
		Location: ctx.Query("location"),
		Keyword:  ctx.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]*dto.UserVO, len(users))
	for i := range users {
		items[i] = dto.NewUserVO(&users[i])
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// Suspend 封禁账号
func (c *AdminController) Suspend(ctx *gin.Context) {
	c.setSuspended(ctx, true, "account suspended")
}

// Unsuspend 解封账号
func (c *AdminController) Unsuspend(ctx *gin.Context) {
	c.setSuspended(ctx, false, "account reinstated")
}

func (c *AdminController) setSuspended(ctx *gin.Context, suspended bool, message string) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := c.adminSvc.SetSuspended(ctx.Request.Context(), id, suspended); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, message, nil)
}

// RemoveListing 下架某账号的挂牌（内容治理）
func (c *AdminController) RemoveListing(ctx *gin.Context) {
	ownerID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := c.adminSvc.RemoveListing(ctx.Request.Context(), ownerID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "listing removed", nil)
}
