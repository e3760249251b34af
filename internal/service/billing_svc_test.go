package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/pkg/utils"
)

// ==================== Mock Stripe ====================

type stripeStub struct {
	*httptest.Server
	accountsCreated int
	linksCreated    int
	chargesEnabled  bool
}

func newStripeStub(t *testing.T) *stripeStub {
	stub := &stripeStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		stub.accountsCreated++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": fmt.Sprintf("acct_test%d", stub.accountsCreated),
		})
	})
	mux.HandleFunc("GET /v1/accounts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                "acct_test1",
			"charges_enabled":   stub.chargesEnabled,
			"payouts_enabled":   stub.chargesEnabled,
			"details_submitted": true,
		})
	})
	mux.HandleFunc("POST /v1/account_links", func(w http.ResponseWriter, r *http.Request) {
		stub.linksCreated++
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("account") == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "Missing required param: account."},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"url": "https://connect.stripe.com/setup/s/test123",
		})
	})

	stub.Server = httptest.NewServer(mux)
	t.Cleanup(stub.Close)
	return stub
}

// ==================== 测试辅助函数 ====================

func newTestBillingService(t *testing.T, stub *stripeStub) (*BillingService, repository.BillingRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.BillingAccount{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	repo := repository.NewBillingRepository(db)
	svc := NewBillingService(repo, &StripeConfig{
		SecretKey:  "sk_test_xxx",
		BaseURL:    stub.URL,
		RefreshURL: "https://gulfcoastmusic.example.com/billing/refresh",
		ReturnURL:  "https://gulfcoastmusic.example.com/billing/done",
	})
	return svc, repo
}

// ==================== Status 测试 ====================

func TestBillingService_Status_NotConnected(t *testing.T) {
	svc, _ := newTestBillingService(t, newStripeStub(t))

	resp, err := svc.Status(context.Background(), 1)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if resp.Connected {
		t.Error("Connected = true, want false")
	}
	if resp.Status != model.BillingStatusNone {
		t.Errorf("Status = %s, want none", resp.Status)
	}
}

func TestBillingService_Status_RefreshesFromStripe(t *testing.T) {
	stub := newStripeStub(t)
	stub.chargesEnabled = true
	svc, repo := newTestBillingService(t, stub)
	ctx := context.Background()

	utils.DeleteCache("billing:7")
	repo.Upsert(ctx, &model.BillingAccount{
		UserID:          7,
		StripeAccountID: "acct_test1",
		Status:          model.BillingStatusOnboarding,
	})

	resp, err := svc.Status(ctx, 7)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !resp.Connected {
		t.Error("Connected = false, want true")
	}
	if resp.Status != model.BillingStatusActive {
		t.Errorf("Status = %s, want active", resp.Status)
	}
	if !resp.ChargesEnabled {
		t.Error("ChargesEnabled = false, want true")
	}

	// 刷新后的状态要落库
	stored, err := repo.GetByUserID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if stored.Status != model.BillingStatusActive {
		t.Errorf("落库 Status = %s, want active", stored.Status)
	}
}

// ==================== Onboard 测试 ====================

func TestBillingService_Onboard(t *testing.T) {
	stub := newStripeStub(t)
	svc, repo := newTestBillingService(t, stub)
	ctx := context.Background()

	utils.DeleteCache("billing:9")
	resp, err := svc.Onboard(ctx, 9)
	if err != nil {
		t.Fatalf("Onboard() error = %v", err)
	}
	if resp.URL == "" {
		t.Error("未返回引导链接")
	}
	if stub.accountsCreated != 1 {
		t.Errorf("accountsCreated = %d, want 1", stub.accountsCreated)
	}

	account, err := repo.GetByUserID(ctx, 9)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if account.StripeAccountID == "" {
		t.Error("StripeAccountID 未落库")
	}
	if account.Status != model.BillingStatusOnboarding {
		t.Errorf("Status = %s, want onboarding", account.Status)
	}

	// 二次 Onboard 复用已有账户，只发新链接
	if _, err := svc.Onboard(ctx, 9); err != nil {
		t.Fatalf("二次 Onboard() error = %v", err)
	}
	if stub.accountsCreated != 1 {
		t.Errorf("accountsCreated = %d, want 1（不应重复建号）", stub.accountsCreated)
	}
	if stub.linksCreated != 2 {
		t.Errorf("linksCreated = %d, want 2", stub.linksCreated)
	}
}
