package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
)

// ==================== 测试辅助函数 ====================

func newTestNewsService(t *testing.T) *NewsService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.NewsArticle{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewNewsService(repository.NewNewsRepository(db))
}

// ==================== Create 测试 ====================

func TestNewsService_Create_SlugCollision(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	req := &dto.CreateArticleRequest{
		Title: "Jazz Fest Returns to the Coast!",
		Body:  "Full lineup inside.",
	}

	first, err := svc.Create(ctx, 1, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Slug != "jazz-fest-returns-to-the-coast" {
		t.Errorf("Slug = %s", first.Slug)
	}

	// 同名文章追加数字后缀
	second, err := svc.Create(ctx, 2, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.Slug != "jazz-fest-returns-to-the-coast-2" {
		t.Errorf("Slug = %s, want jazz-fest-returns-to-the-coast-2", second.Slug)
	}

	third, err := svc.Create(ctx, 3, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if third.Slug != "jazz-fest-returns-to-the-coast-3" {
		t.Errorf("Slug = %s, want jazz-fest-returns-to-the-coast-3", third.Slug)
	}
}

func TestNewsService_Create_PublishImmediately(t *testing.T) {
	svc := newTestNewsService(t)

	article, err := svc.Create(context.Background(), 1, &dto.CreateArticleRequest{
		Title:   "Studio Spotlight",
		Body:    "...",
		Publish: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if article.Status != model.ArticleStatusPublished {
		t.Errorf("Status = %s, want published", article.Status)
	}
	if article.PublishedAt == nil {
		t.Error("PublishedAt 未设置")
	}
}

// ==================== Publish / 可见性测试 ====================

func TestNewsService_DraftInvisibleUntilPublished(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, 1, &dto.CreateArticleRequest{
		Title: "Hidden Draft",
		Body:  "...",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 草稿对公开接口不可见
	if _, err := svc.GetBySlug(ctx, article.Slug); !errors.Is(err, repository.ErrArticleNotFound) {
		t.Errorf("GetBySlug() error = %v, want ErrArticleNotFound", err)
	}
	articles, total, err := svc.Browse(ctx, &dto.ListArticlesRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if total != 0 || len(articles) != 0 {
		t.Errorf("草稿出现在公开列表: total=%d", total)
	}

	// 作者自己的列表能看到
	mine, _, err := svc.Mine(ctx, 1, 1, 10)
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("len(mine) = %d, want 1", len(mine))
	}

	// 发布后公开可见
	if _, err := svc.Publish(ctx, 1, article.ID); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if _, err := svc.GetBySlug(ctx, article.Slug); err != nil {
		t.Errorf("发布后 GetBySlug() error = %v", err)
	}
}

func TestNewsService_OwnershipGuard(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, 1, &dto.CreateArticleRequest{Title: "Mine", Body: "..."})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Publish(ctx, 2, article.ID); !errors.Is(err, ErrNotArticleAuthor) {
		t.Errorf("他人 Publish() error = %v, want ErrNotArticleAuthor", err)
	}
	if err := svc.Delete(ctx, 2, article.ID); !errors.Is(err, ErrNotArticleAuthor) {
		t.Errorf("他人 Delete() error = %v, want ErrNotArticleAuthor", err)
	}

	body := "updated"
	if _, err := svc.Update(ctx, 2, article.ID, &dto.UpdateArticleRequest{Body: &body}); !errors.Is(err, ErrNotArticleAuthor) {
		t.Errorf("他人 Update() error = %v, want ErrNotArticleAuthor", err)
	}
}

// ==================== Slugify 测试 ====================

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jazz Fest Returns!", "jazz-fest-returns"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"MoTown -- 2026", "motown-2026"},
		{"???", ""},
	}
	for _, tt := range tests {
		if got := model.Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
