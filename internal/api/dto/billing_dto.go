package dto

// ==================== 响应 DTO ====================

// BillingStatusResponse 收款账户状态
type BillingStatusResponse struct {
	Connected        bool   `json:"connected"`
	Status           string `json:"status"`
	StripeAccountID  string `json:"stripe_account_id,omitempty"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

// OnboardResponse Stripe 引导链接
type OnboardResponse struct {
	URL string `json:"url"`
}
