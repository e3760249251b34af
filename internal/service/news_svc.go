package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 错误定义 ====================

var ErrNotArticleAuthor = errors.New("article belongs to another journalist")

// ==================== 服务实现 ====================

// NewsService 新闻稿件服务
type NewsService struct {
	newsRepo repository.NewsRepository
}

// NewNewsService 创建新闻服务
func NewNewsService(newsRepo repository.NewsRepository) *NewsService {
	return &NewsService{newsRepo: newsRepo}
}

// Create drafts an article, optionally publishing it immediately.
func (s *NewsService) Create(ctx context.Context, authorID int64, req *dto.CreateArticleRequest) (*model.NewsArticle, error) {
	article := &model.NewsArticle{
		AuthorID: authorID,
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
		Tags:     pq.StringArray(req.Tags),
		Status:   model.ArticleStatusDraft,
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	article.Slug = slug

	if req.Publish {
		if err := article.CanPublish(); err != nil {
			return nil, err
		}
		article.MarkPublished(time.Now())
	}

	if err := s.newsRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Update edits the journalist's own article. The slug never changes after
// creation so published links stay stable.
func (s *NewsService) Update(ctx context.Context, authorID, articleID int64, req *dto.UpdateArticleRequest) (*model.NewsArticle, error) {
	article, err := s.newsRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != authorID {
		return nil, ErrNotArticleAuthor
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if req.Tags != nil {
		article.Tags = pq.StringArray(req.Tags)
	}

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Publish flips a draft live.
func (s *NewsService) Publish(ctx context.Context, authorID, articleID int64) (*model.NewsArticle, error) {
	article, err := s.newsRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != authorID {
		return nil, ErrNotArticleAuthor
	}

	if err := article.CanPublish(); err != nil {
		return nil, err
	}
	article.MarkPublished(time.Now())

	if err := s.newsRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the journalist's own article.
func (s *NewsService) Delete(ctx context.Context, authorID, articleID int64) error {
	article, err := s.newsRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != authorID {
		return ErrNotArticleAuthor
	}
	return s.newsRepo.Delete(ctx, articleID)
}

// GetBySlug returns a published article by its public slug.
func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*model.NewsArticle, error) {
	article, err := s.newsRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.Status != model.ArticleStatusPublished {
		return nil, repository.ErrArticleNotFound
	}
	return article, nil
}

// Browse lists published articles for the public feed.
func (s *NewsService) Browse(ctx context.Context, req *dto.ListArticlesRequest) ([]model.NewsArticle, int64, error) {
	return s.newsRepo.List(ctx, repository.NewsFilter{
		Tag:           req.Tag,
		PublishedOnly: true,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
}

// Mine lists the journalist's own articles, drafts included.
func (s *NewsService) Mine(ctx context.Context, authorID int64, page, pageSize int) ([]model.NewsArticle, int64, error) {
	return s.newsRepo.List(ctx, repository.NewsFilter{
		AuthorID: authorID,
		Page:     page,
		PageSize: pageSize,
	})
}

// uniqueSlug 标题转 slug，冲突时追加数字后缀
func (s *NewsService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := model.Slugify(title)
	if base == "" {
		base = "untitled"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.newsRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
