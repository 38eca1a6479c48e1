package handler

import (
	"errors"
	"net/http"

	"github.com/aerosite/internal/auth"
	"github.com/aerosite/internal/db"
	"github.com/aerosite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes login, registration and profile management.
type AuthHandler struct {
	admins *service.AdminService
	tokens *auth.Manager
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler instance.
func NewAuthHandler(admins *service.AdminService, tokens *auth.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{admins: admins, tokens: tokens, logger: logger}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type profilePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// adminView 是返回给客户端的管理员摘要（不含密码哈希）。
type adminView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func viewOf(admin *db.Admin) adminView {
	return adminView{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role}
}

// Login 校验凭据并签发令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.admins.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respondDataMessage(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"admin": viewOf(admin),
	})
}

// Register 创建新的管理员账号（固定 admin 角色）
func (h *AuthHandler) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.admins.Register(payload.Email, payload.Password, payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			respondError(c, http.StatusBadRequest, "Admin already exists")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondDataMessage(c, http.StatusCreated, "Admin registered successfully", gin.H{
		"token": token,
		"admin": viewOf(admin),
	})
}

// GetProfile 返回当前登录管理员信息
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	admin, err := h.admins.Get(claims.AdminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	respondData(c, http.StatusOK, viewOf(admin))
}

// UpdateProfile 更新当前管理员的名称与邮箱
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.admins.UpdateProfile(claims.AdminID, payload.Name, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			respondError(c, http.StatusNotFound, "Admin not found")
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, http.StatusBadRequest, "Email already in use")
		default:
			h.logger.Error("update profile failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	respondDataMessage(c, http.StatusOK, "Profile updated successfully", viewOf(admin))
}

// ChangePassword 校验旧密码后更新密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.admins.ChangePassword(claims.AdminID, payload.CurrentPassword, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			respondError(c, http.StatusNotFound, "Admin not found")
		case errors.Is(err, service.ErrCurrentPasswordInvalid):
			respondError(c, http.StatusUnauthorized, "Current password is incorrect")
		default:
			h.logger.Error("change password failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	respondMessage(c, "Password changed successfully")
}
