package model

import (
	"gorm.io/datatypes"
)

// ==================== Constants ====================

const (
	// Stripe 账户接入状态
	BillingStatusNone       = "none"       // 未创建 Stripe 账户
	BillingStatusOnboarding = "onboarding" // 已创建，资料未提交完
	BillingStatusActive     = "active"     // 可以收款
	BillingStatusRestricted = "restricted" // Stripe 侧受限
)

// ==================== Models ====================

// BillingAccount links a platform user to their Stripe connected account.
// At most one per user.
type BillingAccount struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	StripeAccountID  string `gorm:"size:64;index" json:"stripe_account_id"`
	Status           string `gorm:"size:20;index;default:none" json:"status"`
	ChargesEnabled   bool   `gorm:"default:false" json:"charges_enabled"`
	PayoutsEnabled   bool   `gorm:"default:false" json:"payouts_enabled"`
	DetailsSubmitted bool   `gorm:"default:false" json:"details_submitted"`

	// Stripe 最近一次返回的原始账户数据，排查状态不一致时用
	RawAccount datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (*BillingAccount) TableName() string {
	return "billing_accounts"
}

// ==================== Helpers ====================

// CanSell reports whether the account may receive marketplace payments.
func (b *BillingAccount) CanSell() bool {
	return b.Status == BillingStatusActive && b.ChargesEnabled
}

// ApplyStripeState folds the flags reported by Stripe into the local status.
func (b *BillingAccount) ApplyStripeState(chargesEnabled, payoutsEnabled, detailsSubmitted bool) {
	b.ChargesEnabled = chargesEnabled
	b.PayoutsEnabled = payoutsEnabled
	b.DetailsSubmitted = detailsSubmitted

	switch {
	case b.StripeAccountID == "":
		b.Status = BillingStatusNone
	case chargesEnabled:
		b.Status = BillingStatusActive
	case detailsSubmitted:
		b.Status = BillingStatusRestricted
	default:
		b.Status = BillingStatusOnboarding
	}
}
