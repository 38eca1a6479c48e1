package handler

import (
	"errors"
	"net/http"

	"github.com/aerosite/internal/media"
	"github.com/aerosite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GalleryHandler exposes media gallery CRUD over HTTP.
type GalleryHandler struct {
	gallery *service.GalleryService
	media   *media.Store
	logger  *zap.Logger
}

// NewGalleryHandler creates a GalleryHandler instance.
func NewGalleryHandler(gallery *service.GalleryService, store *media.Store, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{gallery: gallery, media: store, logger: logger}
}

type galleryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	IsActive    *bool  `json:"isActive"`
	Order       *int   `json:"order"`
}

// galleryInput 是 gallery 资源的统一解码入口。
func galleryInput(c *gin.Context) (service.GalleryInput, error) {
	if isForm(c) {
		return service.GalleryInput{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			ImageURL:    c.PostForm("imageUrl"),
			Category:    c.PostForm("category"),
			Tags:        c.PostForm("tags"),
			IsActive:    optionalBool(c.PostForm("isActive")),
			Order:       optionalInt(c.PostForm("order")),
		}, nil
	}

	var payload galleryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return service.GalleryInput{}, err
	}
	return service.GalleryInput{
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		Tags:        payload.Tags,
		IsActive:    payload.IsActive,
		Order:       payload.Order,
	}, nil
}

// List 返回画廊条目（后台），支持 category 过滤
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.gallery.List(c.Query("category"))
	if err != nil {
		h.logger.Error("list gallery items failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch gallery items")
		return
	}
	respondList(c, items, len(items))
}

// ListPublic 返回启用的画廊条目（公开）
func (h *GalleryHandler) ListPublic(c *gin.Context) {
	items, err := h.gallery.ListActive(c.Query("category"))
	if err != nil {
		h.logger.Error("list public gallery items failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch gallery items")
		return
	}
	respondList(c, items, len(items))
}

// Get 按 id 返回画廊条目
func (h *GalleryHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Gallery item not found")
		return
	}

	item, err := h.gallery.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryItemNotFound) {
			respondError(c, http.StatusNotFound, "Gallery item not found")
			return
		}
		h.logger.Error("get gallery item failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch gallery item")
		return
	}
	respondData(c, http.StatusOK, item)
}

// Create 新建画廊条目；上传文件时记录图片尺寸
func (h *GalleryHandler) Create(c *gin.Context) {
	input, err := galleryInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if isForm(c) {
		if fh, err := c.FormFile("imageUrl"); err == nil {
			url, err := h.media.Save(fh)
			if err != nil {
				respondUploadError(c, h.logger, err)
				return
			}
			input.ImageURL = url
			input.ImageWidth, input.ImageHeight = h.media.Dimensions(url)
		}
	}

	item, err := h.gallery.Create(input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create gallery item")
		return
	}
	respondDataMessage(c, http.StatusCreated, "Gallery item created successfully", item)
}

// Update 更新画廊条目；上传了新图时旧的托管图片会被尽力删除。
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Gallery item not found")
		return
	}

	old, err := h.gallery.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryItemNotFound) {
			respondError(c, http.StatusNotFound, "Gallery item not found")
			return
		}
		h.logger.Error("get gallery item failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update gallery item")
		return
	}

	input, err := galleryInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if isForm(c) {
		if fh, err := c.FormFile("imageUrl"); err == nil {
			url, err := h.media.Save(fh)
			if err != nil {
				respondUploadError(c, h.logger, err)
				return
			}
			if removeErr := h.media.Remove(old.ImageURL); removeErr != nil {
				h.logger.Warn("failed to remove old gallery image", zap.String("path", old.ImageURL), zap.Error(removeErr))
			}
			input.ImageURL = url
			input.ImageWidth, input.ImageHeight = h.media.Dimensions(url)
		}
	}
	if input.ImageURL == "" {
		input.ImageURL = old.ImageURL
	}

	item, err := h.gallery.Update(id, input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update gallery item")
		return
	}
	respondDataMessage(c, http.StatusOK, "Gallery item updated successfully", item)
}

// Delete 删除画廊条目并清理其托管图片
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Gallery item not found")
		return
	}

	item, err := h.gallery.Delete(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to delete gallery item")
		return
	}

	if removeErr := h.media.Remove(item.ImageURL); removeErr != nil {
		h.logger.Warn("failed to remove gallery image", zap.String("path", item.ImageURL), zap.Error(removeErr))
	}

	respondMessage(c, "Gallery item deleted successfully")
}

func (h *GalleryHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrGalleryItemNotFound):
		respondError(c, http.StatusNotFound, "Gallery item not found")
	case errors.Is(err, service.ErrGalleryFieldsMissing), errors.Is(err, service.ErrGalleryImageMissing):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
