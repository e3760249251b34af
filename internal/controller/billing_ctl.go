package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type BillingController struct {
	billingSvc *service.BillingService
}

func NewBillingController(billingSvc *service.BillingService) *BillingController {
	return &BillingController{
		billingSvc: billingSvc,
	}
}

// Status 收款账户状态
// @Summary 查询收款接入状态
// @Tags Billing (收款)
// @Produce json
// @Success 200 {object} dto.BillingStatusResponse
// @Router /api/billing/status [get]
func (c *BillingController) Status(ctx *gin.Context) {
	resp, err := c.billingSvc.Status(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", resp)
}

// Onboard 生成 Stripe 引导链接
// @Summary 开始 Stripe 接入
// @Tags Billing (收款)
// @Produce json
// @Success 200 {object} dto.OnboardResponse
// @Router /api/stripe/connect/onboard [post]
func (c *BillingController) Onboard(ctx *gin.Context) {
	resp, err := c.billingSvc.Onboard(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "onboarding link created", resp)
}
