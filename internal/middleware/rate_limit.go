package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== ActionRateLimiter 操作限流器 ====================

// ActionRateLimiter 按键冷却限流器
// 防止用户高频重复提交（媒体上传管线开销大）
type ActionRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &ActionRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *ActionRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "user:123:listing_submit"
// interval: 冷却间隔
func (r *ActionRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{
		Allowed:    true,
		RetryAfter: 0,
	}
}

// Reset 重置指定 key 的限流
func (r *ActionRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成工具 ====================

// ActionType 操作类型
type ActionType string

const (
	ActionListingSubmit ActionType = "listing_submit"
	ActionMediaUpload   ActionType = "media_upload"
	ActionSignup        ActionType = "signup"
)

// UserActionKey 生成用户级限流 Key
func UserActionKey(userID int64, action ActionType) string {
	return fmt.Sprintf("user:%d:%s", userID, action)
}

// ==================== Gin 中间件 ====================

// Throttle 按用户冷却的限流中间件，挂在写接口上
func Throttle(action ActionType, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.Next()
			return
		}

		result := globalLimiter.Check(UserActionKey(userID, action), interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": fmt.Sprintf("too many requests, retry in %s", result.RetryAfter.Round(time.Second)),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
