package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/pkg/utils"
)

// ==================== 配置 ====================

// StripeConfig Stripe Connect 配置
type StripeConfig struct {
	SecretKey  string // sk_live_... / sk_test_...
	BaseURL    string // 默认 https://api.stripe.com，测试时指向 mock server
	RefreshURL string // 引导流程中断后的回跳地址
	ReturnURL  string // 引导流程完成后的回跳地址
}

// billingCacheTTL 状态查询缓存时间，避免每次页面加载都打 Stripe
const billingCacheTTL = 2 * time.Minute

// ==================== Stripe 响应结构 ====================

type stripeAccount struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

type stripeAccountLink struct {
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ==================== 服务实现 ====================

// BillingService 收款账户服务：查询接入状态、生成 Stripe 引导链接
type BillingService struct {
	billingRepo repository.BillingRepository
	client      *resty.Client
	cfg         *StripeConfig
}

// NewBillingService 创建收款服务
func NewBillingService(billingRepo repository.BillingRepository, cfg *StripeConfig) *BillingService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetBasicAuth(cfg.SecretKey, "").
		SetHeader("User-Agent", "GulfCoastMusic/1.0")

	return &BillingService{
		billingRepo: billingRepo,
		client:      client,
		cfg:         cfg,
	}
}

// Status returns the user's payout readiness, refreshing from Stripe when the
// cached snapshot is stale.
func (s *BillingService) Status(ctx context.Context, userID int64) (*dto.BillingStatusResponse, error) {
	cacheKey := fmt.Sprintf("billing:%d", userID)
	if cached, ok := utils.GetCache(cacheKey); ok {
		if resp, ok := cached.(*dto.BillingStatusResponse); ok {
			return resp, nil
		}
	}

	account, err := s.billingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBillingNotFound) {
			return &dto.BillingStatusResponse{Connected: false, Status: model.BillingStatusNone}, nil
		}
		return nil, err
	}

	if account.StripeAccountID == "" {
		return &dto.BillingStatusResponse{Connected: false, Status: model.BillingStatusNone}, nil
	}

	remote, raw, err := s.fetchAccount(ctx, account.StripeAccountID)
	if err != nil {
		return nil, err
	}

	account.ApplyStripeState(remote.ChargesEnabled, remote.PayoutsEnabled, remote.DetailsSubmitted)
	account.RawAccount = datatypes.JSON(raw)
	if err := s.billingRepo.Upsert(ctx, account); err != nil {
		return nil, err
	}

	resp := &dto.BillingStatusResponse{
		Connected:        true,
		Status:           account.Status,
		StripeAccountID:  account.StripeAccountID,
		ChargesEnabled:   account.ChargesEnabled,
		PayoutsEnabled:   account.PayoutsEnabled,
		DetailsSubmitted: account.DetailsSubmitted,
	}
	utils.SetCache(cacheKey, resp, billingCacheTTL)
	return resp, nil
}

// Onboard creates the connected account if needed and returns a fresh
// onboarding link. Links are single-use, so no caching here.
func (s *BillingService) Onboard(ctx context.Context, userID int64) (*dto.OnboardResponse, error) {
	account, err := s.billingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrBillingNotFound) {
			return nil, err
		}
		account = &model.BillingAccount{UserID: userID, Status: model.BillingStatusNone}
	}

	if account.StripeAccountID == "" {
		created, err := s.createAccount(ctx)
		if err != nil {
			return nil, err
		}
		account.StripeAccountID = created.ID
		account.Status = model.BillingStatusOnboarding
		if err := s.billingRepo.Upsert(ctx, account); err != nil {
			return nil, err
		}
	}

	link, err := s.createAccountLink(ctx, account.StripeAccountID)
	if err != nil {
		return nil, err
	}

	// 状态即将变化，作废缓存
	utils.DeleteCache(fmt.Sprintf("billing:%d", userID))

	return &dto.OnboardResponse{URL: link.URL}, nil
}

// ==================== Stripe API 调用 ====================

// fetchAccount 拉取账户状态，原始响应体一并返回给调用方落库
func (s *BillingService) fetchAccount(ctx context.Context, accountID string) (*stripeAccount, []byte, error) {
	var res stripeAccount
	var apiErr stripeError

	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&res).
		SetError(&apiErr).
		Get("/v1/accounts/" + accountID)

	if err != nil {
		return nil, nil, fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("stripe error [%d]: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	return &res, resp.Body(), nil
}

func (s *BillingService) createAccount(ctx context.Context) (*stripeAccount, error) {
	var res stripeAccount
	var apiErr stripeError

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"type": "express",
		}).
		SetResult(&res).
		SetError(&apiErr).
		Post("/v1/accounts")

	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe error [%d]: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	return &res, nil
}

func (s *BillingService) createAccountLink(ctx context.Context, accountID string) (*stripeAccountLink, error) {
	var res stripeAccountLink
	var apiErr stripeError

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"account":     accountID,
			"refresh_url": s.cfg.RefreshURL,
			"return_url":  s.cfg.ReturnURL,
			"type":        "account_onboarding",
		}).
		SetResult(&res).
		SetError(&apiErr).
		Post("/v1/account_links")

	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe error [%d]: %s", resp.StatusCode(), apiErr.Error.Message)
	}

	return &res, nil
}
