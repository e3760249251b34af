package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type MarketplaceController struct {
	listingSvc *service.ListingService
}

func NewMarketplaceController(listingSvc *service.ListingService) *MarketplaceController {
	return &MarketplaceController{
		listingSvc: listingSvc,
	}
}

// GetMine 获取当前用户的挂牌
// @Summary 获取我的挂牌
// @Tags Marketplace (二手市场)
// @Produce json
// @Success 200 {object} dto.ListingVO
// @Failure 404 {object} map[string]string "尚未挂牌"
// @Router /api/artists/marketplace/mine [get]
func (c *MarketplaceController) GetMine(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	listing, err := c.listingSvc.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", dto.NewListingVO(listing))
}

// Browse 公开的挂牌列表
// @Summary 浏览在售乐器
// @Tags Marketplace (二手市场)
// @Produce json
// @Param location query string false "州筛选"
// @Param keyword query string false "标题关键词"
// @Param page query int false "页码" default(1)
// @Router /api/marketplace [get]
func (c *MarketplaceController) Browse(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	listings, total, err := c.listingSvc.Browse(ctx.Request.Context(), repository.ListingFilter{
		Location: ctx.Query("location"),
		Keyword:  ctx.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]*dto.ListingVO, len(listings))
	for i := range listings {
		items[i] = dto.NewListingVO(&listings[i])
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// Create 创建挂牌 (multipart/form-data)
// @Summary 创建挂牌
// @Tags Marketplace (二手市场)
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "标题"
// @Param price formData number true "价格"
// @Param location formData string true "州"
// @Param photos formData file true "照片 (最多5张)"
// @Param video formData file false "视频 (最多1个)"
// @Router /api/artists/marketplace [post]
func (c *MarketplaceController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	form, photos, video, _, err := c.parseListingForm(ctx)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	listing, warnings, err := c.listingSvc.Create(ctx.Request.Context(), userID, form, photos, video)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "listing created",
		"data":     dto.NewListingVO(listing),
		"warnings": warnings,
	})
}

// Update 更新挂牌 (multipart/form-data，含删除差量)
// @Summary 更新挂牌
// @Tags Marketplace (二手市场)
// @Accept multipart/form-data
// @Produce json
// @Router /api/artists/marketplace [put]
func (c *MarketplaceController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	form, photos, video, deletedPhotos, err := c.parseListingForm(ctx)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	listing, warnings, err := c.listingSvc.Update(ctx.Request.Context(), userID, form, photos, video, deletedPhotos)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "listing updated",
		"data":     dto.NewListingVO(listing),
		"warnings": warnings,
	})
}

// Delete 删除挂牌及其全部媒体
// @Summary 删除挂牌
// @Tags Marketplace (二手市场)
// @Produce json
// @Router /api/artists/marketplace [delete]
func (c *MarketplaceController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.listingSvc.Delete(ctx.Request.Context(), userID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "listing deleted", nil)
}

// ==================== Multipart 解析 ====================

// parseListingForm 解析 multipart 表单：标量字段、photos/video 文件、
// deletedPhotos 既支持重复键也支持 deletedPhotos[0] 这样的索引键
func (c *MarketplaceController) parseListingForm(ctx *gin.Context) (*dto.ListingForm, []*service.MediaUpload, *service.MediaUpload, []string, error) {
	var form dto.ListingForm
	if err := ctx.ShouldBind(&form); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("bad form: %v", err)
	}

	mf, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("multipart form required: %v", err)
	}

	var photos []*service.MediaUpload
	for _, fh := range mf.File["photos"] {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		photos = append(photos, upload)
	}

	var video *service.MediaUpload
	if files := mf.File["video"]; len(files) > 0 {
		video, err = readUpload(files[0])
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	return &form, photos, video, extractDeletedPhotos(mf), nil
}

// readUpload 把一个分片读进内存
func readUpload(fh *multipart.FileHeader) (*service.MediaUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %v", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %v", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")

	return &service.MediaUpload{
		Name:        fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Data:        data,
	}, nil
}

// extractDeletedPhotos 收集待删除照片的 URL 引用
func extractDeletedPhotos(mf *multipart.Form) []string {
	type indexed struct {
		idx int
		url string
	}
	var withIndex []indexed
	var urls []string

	for key, values := range mf.Value {
		switch {
		case key == "deletedPhotos" || key == "deletedPhotos[]":
			for _, v := range values {
				if v != "" {
					urls = append(urls, v)
				}
			}
		case strings.HasPrefix(key, "deletedPhotos[") && strings.HasSuffix(key, "]"):
			n, err := strconv.Atoi(key[len("deletedPhotos[") : len(key)-1])
			if err != nil || len(values) == 0 || values[0] == "" {
				continue
			}
			withIndex = append(withIndex, indexed{idx: n, url: values[0]})
		}
	}

	// 索引键按序号排好再拼接
	sort.Slice(withIndex, func(i, j int) bool { return withIndex[i].idx < withIndex[j].idx })
	for _, item := range withIndex {
		urls = append(urls, item.url)
	}

	return urls
}
