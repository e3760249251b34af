package dto

import (
	"time"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
)

// ==================== 请求 DTO ====================

// CreateArticleRequest 创建新闻请求
type CreateArticleRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Summary string   `json:"summary" binding:"max=500"`
	Body    string   `json:"body" binding:"required"`
	Tags    []string `json:"tags" binding:"max=10"`
	Publish bool     `json:"publish"`
}

// UpdateArticleRequest 更新新闻请求
type UpdateArticleRequest struct {
	Title   *string  `json:"title,omitempty"`
	Summary *string  `json:"summary,omitempty"`
	Body    *string  `json:"body,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ListArticlesRequest 新闻列表查询
type ListArticlesRequest struct {
	Tag      string `form:"tag"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// ArticleVO 新闻信息
type ArticleVO struct {
	ID          int64      `json:"_id"`
	AuthorID    int64      `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body,omitempty"`
	Tags        []string   `json:"tags"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewArticleVO 转换数据库模型为响应结构
// includeBody 为 false 时用于列表页，省去正文
func NewArticleVO(a *model.NewsArticle, includeBody bool) *ArticleVO {
	vo := &ArticleVO{
		ID:          a.ID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		Tags:        []string(a.Tags),
		CoverURL:    a.CoverURL,
		Status:      a.Status,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if includeBody {
		vo.Body = a.Body
	}
	return vo
}
