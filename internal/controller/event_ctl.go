package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/api/dto"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

type EventController struct {
	eventSvc *service.EventService
}

func NewEventController(eventSvc *service.EventService) *EventController {
	return &EventController{
		eventSvc: eventSvc,
	}
}

// Browse 公开演出列表
func (c *EventController) Browse(ctx *gin.Context) {
	var req dto.ListEventsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad query: "+err.Error())
		return
	}

	events, total, err := c.eventSvc.Browse(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]*dto.EventVO, len(events))
	for i := range events {
		items[i] = dto.NewEventVO(&events[i])
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// Get 演出详情
func (c *EventController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := c.eventSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "ok", dto.NewEventVO(event))
}

// Mine 场馆自己的演出（含已取消）
func (c *EventController) Mine(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	events, total, err := c.eventSvc.Mine(ctx.Request.Context(), middleware.GetUserID(ctx), page, pageSize)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	items := make([]*dto.EventVO, len(events))
	for i := range events {
		items[i] = dto.NewEventVO(&events[i])
	}

	respondOK(ctx, "ok", gin.H{
		"items": items,
		"total": total,
	})
}

// Create 创建演出
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	event, err := c.eventSvc.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondCreated(ctx, "event created", dto.NewEventVO(event))
}

// Update 更新演出
func (c *EventController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid event id")
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	event, err := c.eventSvc.Update(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "event updated", dto.NewEventVO(event))
}

// Cancel 取消演出
func (c *EventController) Cancel(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := c.eventSvc.Cancel(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	respondOK(ctx, "event cancelled", nil)
}
