package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== API 客户端 ====================

const (
	marketplacePath = "/api/artists/marketplace"
	minePath        = "/api/artists/marketplace/mine"
	billingPath     = "/api/billing/status"
	onboardPath     = "/api/stripe/connect/onboard"
)

// Client 平台 REST 接口的客户端。会话显式注入，
// 任何一次 401 都会清空它并返回 UnauthorizedError。
type Client struct {
	http    *resty.Client
	session *AuthSession

	mu         sync.Mutex
	submitting bool
}

// New 创建客户端
func New(baseURL string, session *AuthSession) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "GulfCoastMusic-Client/1.0")

	return &Client{http: httpClient, session: session}
}

// Session 当前会话
func (c *Client) Session() *AuthSession {
	return c.session
}

// ==================== 读操作 ====================

// FetchMyListing 拉取当前用户的挂牌，没有则返回 (nil, nil)
func (c *Client) FetchMyListing(ctx context.Context) (*Listing, error) {
	resp, err := c.newRequest(ctx).Get(minePath)
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		// 单例挂牌：404 表示还没创建，不算错误
		return nil, nil
	}

	env, derr := c.decode(resp, err)
	if derr != nil {
		return nil, derr
	}

	var listing Listing
	if uerr := json.Unmarshal(env.Data, &listing); uerr != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode(), Message: "malformed listing payload"}
	}
	return &listing, nil
}

// FetchBillingStatus 拉取收款账户状态
func (c *Client) FetchBillingStatus(ctx context.Context) (*BillingStatus, error) {
	resp, err := c.newRequest(ctx).Get(billingPath)
	env, derr := c.decode(resp, err)
	if derr != nil {
		return nil, derr
	}

	var status BillingStatus
	if uerr := json.Unmarshal(env.Data, &status); uerr != nil {
		return nil, &ServerError{StatusCode: resp.StatusCode(), Message: "malformed billing payload"}
	}
	return &status, nil
}

// ==================== 写操作 ====================

// StartOnboarding 发起 Stripe 引导，返回跳转地址
func (c *Client) StartOnboarding(ctx context.Context) (string, error) {
	resp, err := c.newRequest(ctx).Post(onboardPath)
	env, derr := c.decode(resp, err)
	if derr != nil {
		return "", derr
	}

	var payload struct {
		URL string `json:"url"`
	}
	if uerr := json.Unmarshal(env.Data, &payload); uerr != nil {
		return "", &ServerError{StatusCode: resp.StatusCode(), Message: "malformed onboarding payload"}
	}
	return payload.URL, nil
}

// DeleteListing 删除当前用户的挂牌
func (c *Client) DeleteListing(ctx context.Context) error {
	resp, err := c.newRequest(ctx).Delete(marketplacePath)
	_, derr := c.decode(resp, err)
	return derr
}

// ==================== 内部 ====================

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.session.Authenticated() {
		req.SetHeader("Authorization", "Bearer "+c.session.Token)
	}
	return req
}

// decode 统一处理响应外壳。401 清空会话并短路其余处理；
// 其余非 success 的响应把服务端 message 原样透出。
func (c *Client) decode(resp *resty.Response, err error) (*envelope, error) {
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var env envelope
	if len(resp.Body()) > 0 {
		// 网关可能返回非 JSON，解析失败时走 ServerError 分支
		_ = json.Unmarshal(resp.Body(), &env)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.session.Clear()
		return nil, &UnauthorizedError{RedirectTo: SigninPath}
	}

	if resp.IsError() || !env.Success {
		if len(env.Errors) > 0 {
			return nil, &ValidationError{Fields: env.Errors}
		}
		return nil, &ServerError{StatusCode: resp.StatusCode(), Message: env.Message}
	}
	return &env, nil
}
