package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aerosite/internal/auth"
	"github.com/aerosite/internal/db"
	"github.com/aerosite/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsContextKey = "__admin_claims"

// AuthRequired 校验 Authorization 头中的 Bearer 令牌。
// 缺失令牌返回 401，无效或过期令牌返回 403。
func AuthRequired(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := ""
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			respondError(c, http.StatusForbidden, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// SuperAdminRequired 限制仅超级管理员可访问，须挂在 AuthRequired 之后。
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || claims.Role != db.RoleSuperAdmin {
			respondError(c, http.StatusForbidden, "Super admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentClaims 返回认证中间件写入的管理员身份。
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// RequestLogger 记录每个请求的方法、路径、状态码与耗时，
// 并更新 Prometheus 指标。
func RequestLogger(logger *zap.Logger, reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()

		if reg != nil {
			reg.HTTPRequestsTotal.WithLabelValues(endpoint, c.Request.Method, strconv.Itoa(status)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(endpoint, c.Request.Method).Observe(duration.Seconds())
		}

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Int64("duration_ms", duration.Milliseconds()),
		)
	}
}

// Recovery 将未捕获的 panic 转为统一的 500 响应。
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		logger.Error("panic recovered", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
