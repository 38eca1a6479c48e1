package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aerosite/internal/media"
	"github.com/aerosite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxEventImages 限制单次上传的图片数量
const maxEventImages = 10

// EventHandler exposes event CRUD over HTTP.
type EventHandler struct {
	events *service.EventService
	media  *media.Store
	logger *zap.Logger
}

// NewEventHandler creates an EventHandler instance.
func NewEventHandler(events *service.EventService, store *media.Store, logger *zap.Logger) *EventHandler {
	return &EventHandler{events: events, media: store, logger: logger}
}

type eventPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	IsActive    *bool    `json:"isActive"`
	Featured    *bool    `json:"featured"`
}

// eventInput 是 event 资源的统一解码入口。日期接受 RFC3339 或
// YYYY-MM-DD，无法解析时保持零值交由服务层校验。
func eventInput(c *gin.Context) (service.EventInput, error) {
	if isForm(c) {
		input := service.EventInput{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Location:    c.PostForm("location"),
			Category:    c.PostForm("category"),
			IsActive:    optionalBool(c.PostForm("isActive")),
			Featured:    optionalBool(c.PostForm("featured")),
		}
		if raw := c.PostForm("date"); raw != "" {
			if date, err := parseISODate(raw); err == nil {
				input.Date = date
			}
		}
		return input, nil
	}

	var payload eventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return service.EventInput{}, err
	}
	input := service.EventInput{
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		Images:      payload.Images,
		Category:    payload.Category,
		IsActive:    payload.IsActive,
		Featured:    payload.Featured,
	}
	if payload.Date != "" {
		if date, err := parseISODate(payload.Date); err == nil {
			input.Date = date
		}
	}
	return input, nil
}

// List 返回活动列表（后台），支持 category 与 featured 过滤
func (h *EventHandler) List(c *gin.Context) {
	filter := service.EventFilter{Category: c.Query("category")}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	events, err := h.events.List(filter)
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	respondList(c, events, len(events))
}

// ListPublic 返回启用的活动（公开）
func (h *EventHandler) ListPublic(c *gin.Context) {
	events, err := h.events.ListPublic()
	if err != nil {
		h.logger.Error("list public events failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	respondList(c, events, len(events))
}

// Get 按 id 返回活动
func (h *EventHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	event, err := h.events.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("get event failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	respondData(c, http.StatusOK, event)
}

// Create 新建活动；上传文件优先于请求体中的图片地址列表
func (h *EventHandler) Create(c *gin.Context) {
	input, err := eventInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if files := formFiles(c, "images", maxEventImages); len(files) > 0 {
		urls, err := h.media.SaveAll(files)
		if err != nil {
			respondUploadError(c, h.logger, err)
			return
		}
		input.Images = urls
	}

	event, err := h.events.Create(input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create event")
		return
	}
	respondDataMessage(c, http.StatusCreated, "Event created successfully", event)
}

// Update 更新活动；上传了新图时旧的托管图片会被尽力删除。
func (h *EventHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	old, err := h.events.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondError(c, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("get event failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	input, err := eventInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if files := formFiles(c, "images", maxEventImages); len(files) > 0 {
		urls, err := h.media.SaveAll(files)
		if err != nil {
			respondUploadError(c, h.logger, err)
			return
		}
		if removeErr := h.media.RemoveAll(old.Images); removeErr != nil {
			h.logger.Warn("failed to remove old event images", zap.Error(removeErr))
		}
		input.Images = urls
	}
	if input.Date.IsZero() {
		input.Date = old.Date
	}

	event, err := h.events.Update(id, input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update event")
		return
	}
	respondDataMessage(c, http.StatusOK, "Event updated successfully", event)
}

// Delete 删除活动并清理其托管图片
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	event, err := h.events.Delete(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to delete event")
		return
	}

	if removeErr := h.media.RemoveAll(event.Images); removeErr != nil {
		h.logger.Warn("failed to remove event images", zap.Error(removeErr))
	}

	respondMessage(c, "Event deleted successfully")
}

// ToggleFeatured 翻转精选状态
func (h *EventHandler) ToggleFeatured(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Event not found")
		return
	}

	event, err := h.events.ToggleFeatured(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to toggle event featured status")
		return
	}

	state := "unfeatured"
	if event.Featured {
		state = "featured"
	}
	respondDataMessage(c, http.StatusOK, fmt.Sprintf("Event %s successfully", state), event)
}

func (h *EventHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		respondError(c, http.StatusNotFound, "Event not found")
	case errors.Is(err, service.ErrEventFieldsMissing), errors.Is(err, service.ErrEventCategoryInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
