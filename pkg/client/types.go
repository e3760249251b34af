package client

import (
	"encoding/json"
	"time"
)

// ==================== 线上数据结构 ====================

// envelope 所有接口共用的响应外壳
type envelope struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Data     json.RawMessage   `json:"data"`
	Errors   map[string]string `json:"errors"`
	Warnings []MediaWarning    `json:"warnings"`
}

// Photo 已持久化的照片
type Photo struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Listing 服务端返回的挂牌
type Listing struct {
	ID          int64     `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Photos      []Photo   `json:"photos"`
	Video       string    `json:"video,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MediaWarning 创建/更新成功但个别文件被拒时的提示
type MediaWarning struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// BillingStatus 收款账户状态
type BillingStatus struct {
	Connected        bool   `json:"connected"`
	Status           string `json:"status"`
	StripeAccountID  string `json:"stripe_account_id,omitempty"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

// SubmitMode 提交模式，由调用方显式携带，不从本地状态推断
type SubmitMode string

const (
	ModeCreate SubmitMode = "create"
	ModeUpdate SubmitMode = "update"
)
