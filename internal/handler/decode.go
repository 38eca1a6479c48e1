package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/aerosite/internal/media"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// isForm 判断请求体是否为表单编码（含 multipart 文件上传）。
func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "multipart/form-data" || ct == "application/x-www-form-urlencoded"
}

// optionalBool 将表单中的布尔字符串转换为指针；空字符串视为缺省。
func optionalBool(raw string) *bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value := raw == "true"
	return &value
}

// optionalInt 将表单中的数字字符串转换为指针；空字符串视为缺省，
// 无法解析时回退为 0。
func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		value = 0
	}
	return &value
}

// formFiles 返回 multipart 表单中指定字段的文件列表，封顶 limit 个。
func formFiles(c *gin.Context, field string, limit int) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := form.File[field]
	if len(files) > limit {
		files = files[:limit]
	}
	return files
}

// respondUploadError 将媒体保存失败映射为统一响应。
func respondUploadError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, media.ErrNotImage) {
		respondError(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}
	logger.Error("upload failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Failed to save uploaded file")
}
