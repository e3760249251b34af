package model

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

// ==================== Constants ====================

const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// ==================== Models ====================

// NewsArticle is a piece written by a journalist account.
type NewsArticle struct {
	BaseModel
	AuthorID int64 `gorm:"index;not null" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"-"`

	Title    string         `gorm:"size:200;not null" json:"title"`
	Slug     string         `gorm:"size:220;uniqueIndex" json:"slug"`
	Summary  string         `gorm:"size:500" json:"summary"`
	Body     string         `gorm:"type:text;not null" json:"body"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`
	CoverURL string         `gorm:"size:2048" json:"cover_url,omitempty"`

	Status      string     `gorm:"size:20;index;default:draft" json:"status"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	// 审计字段，由 GORM 回调自动填充
	CreatedBy int64 `gorm:"index" json:"created_by,omitempty"`
	UpdatedBy int64 `json:"updated_by,omitempty"`
}

func (*NewsArticle) TableName() string {
	return "news_articles"
}

// ==================== Helpers ====================

// CanPublish checks whether the article is complete enough to go live.
func (a *NewsArticle) CanPublish() error {
	if a.Status == ArticleStatusPublished {
		return errors.New("article is already published")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("article title is required")
	}
	if strings.TrimSpace(a.Body) == "" {
		return errors.New("article body is required")
	}
	return nil
}

// MarkPublished flips the article live and stamps the publish time.
func (a *NewsArticle) MarkPublished(now time.Time) {
	a.Status = ArticleStatusPublished
	a.PublishedAt = &now
}

// Slugify derives a URL slug from a title. Collisions are resolved by the
// caller appending a numeric suffix.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
