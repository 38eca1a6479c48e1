package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aerosite/internal/db"
	"github.com/aerosite/internal/media"
	"github.com/aerosite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// maxSectionImages 限制单次上传的图片数量
const maxSectionImages = 10

// AboutHandler exposes about page section CRUD over HTTP.
type AboutHandler struct {
	sections *service.AboutService
	media    *media.Store
	logger   *zap.Logger
}

// NewAboutHandler creates an AboutHandler instance.
func NewAboutHandler(sections *service.AboutService, store *media.Store, logger *zap.Logger) *AboutHandler {
	return &AboutHandler{sections: sections, media: store, logger: logger}
}

type aboutPayload struct {
	Section     string         `json:"section"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Images      []string       `json:"images"`
	Stats       []db.AboutStat `json:"stats"`
	IsActive    *bool          `json:"isActive"`
	Order       *int           `json:"order"`
}

// aboutInput 是 about 资源的统一解码入口。表单体中的 stats 以 JSON
// 字符串传输，解析失败时静默回退为空列表。
func aboutInput(c *gin.Context) (service.AboutInput, error) {
	if isForm(c) {
		input := service.AboutInput{
			Section:     c.PostForm("section"),
			Title:       c.PostForm("title"),
			Subtitle:    c.PostForm("subtitle"),
			Description: c.PostForm("description"),
			Content:     c.PostForm("content"),
			IsActive:    optionalBool(c.PostForm("isActive")),
			Order:       optionalInt(c.PostForm("order")),
		}
		if raw := c.PostForm("stats"); raw != "" {
			var stats []db.AboutStat
			if err := json.Unmarshal([]byte(raw), &stats); err != nil {
				stats = []db.AboutStat{}
			}
			input.Stats = stats
		}
		return input, nil
	}

	var payload aboutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return service.AboutInput{}, err
	}
	return service.AboutInput{
		Section:     payload.Section,
		Title:       payload.Title,
		Subtitle:    payload.Subtitle,
		Description: payload.Description,
		Content:     payload.Content,
		Images:      payload.Images,
		Stats:       payload.Stats,
		IsActive:    payload.IsActive,
		Order:       payload.Order,
	}, nil
}

// renderContent 将 markdown 内容渲染为净化后的 HTML。
func renderContent(section *db.AboutSection) {
	if section.Content == "" {
		return
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(section.Content), &buf); err != nil {
		return
	}
	section.ContentHTML = sanitizer.Sanitize(buf.String())
}

// ListPublic 返回启用的板块（公开），附带渲染后的内容
func (h *AboutHandler) ListPublic(c *gin.Context) {
	sections, err := h.sections.ListActive(c.Query("section"))
	if err != nil {
		h.logger.Error("list about sections failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch about sections")
		return
	}
	for i := range sections {
		renderContent(&sections[i])
	}
	respondList(c, sections, len(sections))
}

// List 返回全部板块（后台）
func (h *AboutHandler) List(c *gin.Context) {
	sections, err := h.sections.List(c.Query("section"))
	if err != nil {
		h.logger.Error("list about sections failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch about sections")
		return
	}
	respondList(c, sections, len(sections))
}

// Get 按 id 返回板块
func (h *AboutHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "About section not found")
		return
	}

	section, err := h.sections.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAboutNotFound) {
			respondError(c, http.StatusNotFound, "About section not found")
			return
		}
		h.logger.Error("get about section failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch about section")
		return
	}
	respondData(c, http.StatusOK, section)
}

// Create 新建板块；上传文件优先于请求体中的图片地址列表
func (h *AboutHandler) Create(c *gin.Context) {
	input, err := aboutInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if files := formFiles(c, "images", maxSectionImages); len(files) > 0 {
		urls, err := h.media.SaveAll(files)
		if err != nil {
			respondUploadError(c, h.logger, err)
			return
		}
		input.Images = urls
	}

	section, err := h.sections.Create(input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create about section")
		return
	}
	respondDataMessage(c, http.StatusCreated, "About section created successfully", section)
}

// Update 更新板块；上传了新图时旧的托管图片会被尽力删除。
func (h *AboutHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "About section not found")
		return
	}

	old, err := h.sections.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAboutNotFound) {
			respondError(c, http.StatusNotFound, "About section not found")
			return
		}
		h.logger.Error("get about section failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update about section")
		return
	}

	input, err := aboutInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if files := formFiles(c, "images", maxSectionImages); len(files) > 0 {
		urls, err := h.media.SaveAll(files)
		if err != nil {
			respondUploadError(c, h.logger, err)
			return
		}
		if removeErr := h.media.RemoveAll(old.Images); removeErr != nil {
			h.logger.Warn("failed to remove old section images", zap.Error(removeErr))
		}
		input.Images = urls
	}

	section, err := h.sections.Update(id, input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update about section")
		return
	}
	respondDataMessage(c, http.StatusOK, "About section updated successfully", section)
}

// Delete 删除板块并清理其托管图片
func (h *AboutHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "About section not found")
		return
	}

	section, err := h.sections.Delete(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to delete about section")
		return
	}

	if removeErr := h.media.RemoveAll(section.Images); removeErr != nil {
		h.logger.Warn("failed to remove section images", zap.Error(removeErr))
	}

	respondMessage(c, "About section deleted successfully")
}

func (h *AboutHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAboutNotFound):
		respondError(c, http.StatusNotFound, "About section not found")
	case errors.Is(err, service.ErrAboutFieldsMissing), errors.Is(err, service.ErrAboutSectionInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
