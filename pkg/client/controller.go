package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ==================== 页面状态机 ====================

// PageState 行情页的四个状态
type PageState string

const (
	StateEmpty      PageState = "empty"      // 没有挂牌
	StateViewing    PageState = "viewing"    // 展示已持久化的挂牌
	StateEditing    PageState = "editing"    // 草稿可编辑
	StateSubmitting PageState = "submitting" // 提交中，控件禁用
)

// ErrInvalidTransition 当前状态下不允许的操作
var ErrInvalidTransition = errors.New("invalid page state transition")

// PageController 行情页控制器。持有最近一次从服务端拉到的挂牌、
// 收款状态和当前草稿，负责状态迁移：
//
//	Empty   → Editing     点击新建
//	Viewing → Editing     点击编辑
//	Editing → Submitting  合法提交
//	Submitting → Viewing  提交成功
//	Submitting → Editing  提交失败（草稿保留）
//	Editing → Viewing     取消（已有挂牌）
//	Editing → Empty       取消（从未创建）
//	Viewing → Empty       删除成功
type PageController struct {
	client *Client

	mu      sync.Mutex
	state   PageState
	listing *Listing // 最近一次服务端状态，CancelEdit 的还原基准
	billing *BillingStatus
	draft   *ListingDraft
}

// NewPageController 创建控制器，初始为 Empty
func NewPageController(c *Client) *PageController {
	return &PageController{client: c, state: StateEmpty}
}

// ==================== 读取 ====================

// State 当前页面状态
func (p *PageController) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Listing 最近一次拉到的挂牌，可能为 nil
func (p *PageController) Listing() *Listing {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listing
}

// Billing 最近一次拉到的收款状态，可能为 nil
func (p *PageController) Billing() *BillingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.billing
}

// Draft 当前草稿。Editing 状态下调用方直接改它
func (p *PageController) Draft() *ListingDraft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// ==================== 加载 ====================

// Load 并发拉取挂牌和收款状态。有挂牌进 Viewing，没有进 Empty。
// 任一路 401 都会优先透出（此时会话已被清空）。
func (p *PageController) Load(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		listing *Listing
		billing *BillingStatus
		lerr    error
		berr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		listing, lerr = p.client.FetchMyListing(ctx)
	}()
	go func() {
		defer wg.Done()
		billing, berr = p.client.FetchBillingStatus(ctx)
	}()
	wg.Wait()

	// 未授权短路其它处理
	var unauth *UnauthorizedError
	if errors.As(lerr, &unauth) || errors.As(berr, &unauth) {
		return unauth
	}
	if lerr != nil {
		return lerr
	}
	if berr != nil {
		return berr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.listing = listing
	p.billing = billing
	if listing != nil {
		p.draft = NewDraftFromListing(listing)
		p.state = StateViewing
	} else {
		p.draft = nil
		p.state = StateEmpty
	}
	return nil
}

// Refresh 重跑初始拉取，创建/更新/删除之后和手动刷新都走这里
func (p *PageController) Refresh(ctx context.Context) error {
	return p.Load(ctx)
}

// ==================== 编辑 ====================

// StartCreate 从 Empty 进入 Editing，草稿全空、状态 active
func (p *PageController) StartCreate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateEmpty {
		return fmt.Errorf("%w: create from %s", ErrInvalidTransition, p.state)
	}
	p.draft = NewListingDraft()
	p.state = StateEditing
	return nil
}

// StartEdit 从 Viewing 进入 Editing，草稿从服务端状态重建
func (p *PageController) StartEdit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateViewing {
		return fmt.Errorf("%w: edit from %s", ErrInvalidTransition, p.state)
	}
	p.draft = NewDraftFromListing(p.listing)
	p.state = StateEditing
	return nil
}

// CancelEdit 丢弃未保存的改动和删除标记，还原最近一次服务端状态。
// 已有挂牌回 Viewing，从未创建过回 Empty。
func (p *PageController) CancelEdit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateEditing {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, p.state)
	}
	if p.listing != nil {
		p.draft = NewDraftFromListing(p.listing)
		p.state = StateViewing
	} else {
		p.draft = nil
		p.state = StateEmpty
	}
	return nil
}

// ==================== 提交与删除 ====================

// Submit 提交当前草稿。create 还是 update 由是否已有挂牌决定，
// 不从草稿内容推断。成功进 Viewing；失败退回 Editing，草稿原样保留。
func (p *PageController) Submit(ctx context.Context) ([]MediaWarning, error) {
	p.mu.Lock()
	if p.state != StateEditing {
		defer p.mu.Unlock()
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, p.state)
	}

	mode := ModeUpdate
	if p.listing == nil {
		mode = ModeCreate
	}
	draft := p.draft
	p.state = StateSubmitting
	p.mu.Unlock()

	listing, warnings, err := p.client.Submit(ctx, draft, mode)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateEditing
		return nil, err
	}
	p.listing = listing
	p.state = StateViewing
	return warnings, nil
}

// Delete 删除挂牌，必须先经确认回调放行。确认被拒时什么都不做，
// 返回 (false, nil)。成功后回到 Empty。
func (p *PageController) Delete(ctx context.Context, confirm func() bool) (bool, error) {
	p.mu.Lock()
	if p.state != StateViewing {
		defer p.mu.Unlock()
		return false, fmt.Errorf("%w: delete from %s", ErrInvalidTransition, p.state)
	}
	p.mu.Unlock()

	if confirm == nil || !confirm() {
		return false, nil
	}

	if err := p.client.DeleteListing(ctx); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.listing = nil
	p.draft = nil
	p.state = StateEmpty
	return true, nil
}
