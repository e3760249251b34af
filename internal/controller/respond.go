package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

// ==================== 统一响应 ====================

// respondOK 成功响应，data 可以为 nil
func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondCreated 创建成功
func respondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError 失败响应
func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondServiceError 将服务层错误翻译成 HTTP 状态码
func respondServiceError(ctx *gin.Context, err error) {
	var fieldErrs model.FieldErrors
	if errors.As(err, &fieldErrs) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  map[string]string(fieldErrs),
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrListingNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrArticleNotFound),
		errors.Is(err, repository.ErrBillingNotFound):
		respondError(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrListingExists),
		errors.Is(err, service.ErrEmailTaken):
		respondError(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(ctx, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrAccountSuspended),
		errors.Is(err, service.ErrNotEventOwner),
		errors.Is(err, service.ErrNotArticleAuthor):
		respondError(ctx, http.StatusForbidden, err.Error())

	default:
		respondError(ctx, http.StatusInternalServerError, err.Error())
	}
}
