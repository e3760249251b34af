package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type NewsController struct {
	newsSvc *service.NewsService
}

func NewNewsController(newsSvc *service.NewsService) *NewsController {
	return &NewsController{
		newsSvc: newsSvc,
	}
}

// Browse 公开新闻流，只含已发布文章
func (c *NewsController) Browse(ctx *gin.Context) {
	var req dto.ListArticlesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad query: "+err.Error())
		return
	}

	articles, total, err := c.newsSvc.Browse(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// 列表页不带正文
	items := make([]*dto.ArticleVO, len(articles))
	for i := range articles {
		items[i] = dto.NewArticleVO(&articles[i], false)
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// GetBySlug 文章详情
func (c *NewsController) GetBySlug(ctx *gin.Context) {
	article, err := c.newsSvc.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", dto.NewArticleVO(article, true))
}

// Mine 记者自己的稿件列表（含草稿）
func (c *NewsController) Mine(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	articles, total, err := c.newsSvc.Mine(ctx.Request.Context(), middleware.GetUserID(ctx), page, pageSize)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]*dto.ArticleVO, len(articles))
	for i := range articles {
		items[i] = dto.NewArticleVO(&articles[i], false)
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// Create 创建稿件
func (c *NewsController) Create(ctx *gin.Context) {
	var req dto.CreateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	article, err := c.newsSvc.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondCreated(ctx, "article created", dto.NewArticleVO(article, true))
}

// Update 更新稿件
func (c *NewsController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid article id")
		return
	}

	var req dto.UpdateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	article, err := c.newsSvc.Update(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "article updated", dto.NewArticleVO(article, true))
}

// Publish 发布稿件
func (c *NewsController) Publish(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := c.newsSvc.Publish(ctx.Request.Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "article published", dto.NewArticleVO(article, true))
}

// Delete 删除稿件
func (c *NewsController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := c.newsSvc.Delete(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "article deleted", nil)
}
