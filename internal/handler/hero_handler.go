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

// HeroHandler exposes hero banner CRUD over HTTP.
type HeroHandler struct {
	heroes *service.HeroService
	media  *media.Store
	logger *zap.Logger
}

// NewHeroHandler creates a HeroHandler instance.
func NewHeroHandler(heroes *service.HeroService, store *media.Store, logger *zap.Logger) *HeroHandler {
	return &HeroHandler{heroes: heroes, media: store, logger: logger}
}

type heroPayload struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
	IsActive        *bool  `json:"isActive"`
}

// heroInput 是 hero 资源的统一解码入口：JSON 体直接绑定，
// 表单体做字符串到布尔的转换。
func heroInput(c *gin.Context) (service.HeroInput, error) {
	if isForm(c) {
		return service.HeroInput{
			Title:           c.PostForm("title"),
			Subtitle:        c.PostForm("subtitle"),
			BackgroundImage: c.PostForm("backgroundImage"),
			CTAText:         c.PostForm("ctaText"),
			CTALink:         c.PostForm("ctaLink"),
			IsActive:        optionalBool(c.PostForm("isActive")),
		}, nil
	}

	var payload heroPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return service.HeroInput{}, err
	}
	return service.HeroInput{
		Title:           payload.Title,
		Subtitle:        payload.Subtitle,
		BackgroundImage: payload.BackgroundImage,
		CTAText:         payload.CTAText,
		CTALink:         payload.CTALink,
		IsActive:        payload.IsActive,
	}, nil
}

// List 返回全部 hero（后台）
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.heroes.List()
	if err != nil {
		h.logger.Error("list heroes failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch heroes")
		return
	}
	respondList(c, heroes, len(heroes))
}

// GetActive 返回当前启用的 hero（公开）
func (h *HeroHandler) GetActive(c *gin.Context) {
	hero, err := h.heroes.Active()
	if err != nil {
		if errors.Is(err, service.ErrNoActiveHero) {
			respondError(c, http.StatusNotFound, "No active hero found")
			return
		}
		h.logger.Error("get active hero failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch active hero")
		return
	}
	respondData(c, http.StatusOK, hero)
}

// Get 按 id 返回 hero
func (h *HeroHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Hero not found")
		return
	}

	hero, err := h.heroes.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrHeroNotFound) {
			respondError(c, http.StatusNotFound, "Hero not found")
			return
		}
		h.logger.Error("get hero failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch hero")
		return
	}
	respondData(c, http.StatusOK, hero)
}

// Create 新建 hero；multipart 请求中的 backgroundImage 文件优先于
// 请求体里的图片地址。
func (h *HeroHandler) Create(c *gin.Context) {
	input, err := heroInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if isForm(c) {
		if fh, err := c.FormFile("backgroundImage"); err == nil {
			url, err := h.media.Save(fh)
			if err != nil {
				respondUploadError(c, h.logger, err)
				return
			}
			input.BackgroundImage = url
		}
	}

	hero, err := h.heroes.Create(input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create hero")
		return
	}
	respondDataMessage(c, http.StatusCreated, "Hero created successfully", hero)
}

// Update 更新 hero；上传了新图时旧的托管图片会被尽力删除。
func (h *HeroHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Hero not found")
		return
	}

	old, err := h.heroes.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrHeroNotFound) {
			respondError(c, http.StatusNotFound, "Hero not found")
			return
		}
		h.logger.Error("get hero failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update hero")
		return
	}

	input, err := heroInput(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if isForm(c) {
		if fh, err := c.FormFile("backgroundImage"); err == nil {
			url, err := h.media.Save(fh)
			if err != nil {
				respondUploadError(c, h.logger, err)
				return
			}
			if removeErr := h.media.Remove(old.BackgroundImage); removeErr != nil {
				h.logger.Warn("failed to remove old hero image", zap.String("path", old.BackgroundImage), zap.Error(removeErr))
			}
			input.BackgroundImage = url
		}
	}
	if input.BackgroundImage == "" {
		input.BackgroundImage = old.BackgroundImage
	}

	hero, err := h.heroes.Update(id, input)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update hero")
		return
	}
	respondDataMessage(c, http.StatusOK, "Hero updated successfully", hero)
}

// Delete 删除 hero 并清理其托管图片
func (h *HeroHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Hero not found")
		return
	}

	hero, err := h.heroes.Delete(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to delete hero")
		return
	}

	if removeErr := h.media.Remove(hero.BackgroundImage); removeErr != nil {
		h.logger.Warn("failed to remove hero image", zap.String("path", hero.BackgroundImage), zap.Error(removeErr))
	}

	respondMessage(c, "Hero deleted successfully")
}

// ToggleActive 翻转启用状态
func (h *HeroHandler) ToggleActive(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "Hero not found")
		return
	}

	hero, err := h.heroes.ToggleActive(id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to toggle hero status")
		return
	}

	state := "deactivated"
	if hero.IsActive {
		state = "activated"
	}
	respondDataMessage(c, http.StatusOK, fmt.Sprintf("Hero %s successfully", state), hero)
}

func (h *HeroHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrHeroNotFound):
		respondError(c, http.StatusNotFound, "Hero not found")
	case errors.Is(err, service.ErrHeroImageMissing), errors.Is(err, service.ErrHeroTitleMissing):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
