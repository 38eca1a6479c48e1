package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule 描述对单个请求字段的声明式校验。
// Check 为空时仅检查字段存在且非空。
type Rule struct {
	Field    string
	Message  string
	Optional bool
	Check    func(string) bool
}

// Required builds a presence rule.
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message}
}

// ValidEmail builds an email format rule.
func ValidEmail(field string) Rule {
	return Rule{Field: field, Message: "Valid email is required", Check: emailPattern.MatchString}
}

// OptionalEmail validates email format only when the field is present.
func OptionalEmail(field string) Rule {
	r := ValidEmail(field)
	r.Optional = true
	return r
}

// ISODate builds an ISO-8601 date rule.
func ISODate(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		_, err := parseISODate(v)
		return err == nil
	}}
}

// MinLength builds a minimum length rule.
func MinLength(field string, min int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v string) bool {
		return len(v) >= min
	}}
}

// Validate 在处理器之前执行字段校验；任一规则失败即返回 400，
// 处理器不会被调用。
func Validate(rules ...Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		values := requestValues(c)

		var errs []FieldError
		for _, rule := range rules {
			value, present := values[rule.Field]
			value = strings.TrimSpace(value)
			if !present || value == "" {
				if !rule.Optional {
					errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
				}
				continue
			}
			if rule.Check != nil && !rule.Check(value) {
				errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
			}
		}

		if len(errs) > 0 {
			respondValidation(c, errs)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestValues 将请求体字段抽取为字符串映射。
// 表单与 multipart 直接读取；JSON 体读取后回填，供处理器再次绑定。
func requestValues(c *gin.Context) map[string]string {
	values := map[string]string{}

	switch c.ContentType() {
	case "multipart/form-data":
		if form, err := c.MultipartForm(); err == nil && form != nil {
			for key, vals := range form.Value {
				if len(vals) > 0 {
					values[key] = vals[0]
				}
			}
		}
		return values
	case "application/x-www-form-urlencoded":
		_ = c.Request.ParseForm()
		for key, vals := range c.Request.PostForm {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		return values
	}

	raw, err := c.GetRawData()
	if err != nil {
		return values
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return values
	}
	for key, val := range body {
		switch typed := val.(type) {
		case string:
			values[key] = typed
		case float64, bool:
			values[key] = fmt.Sprintf("%v", typed)
		}
	}
	return values
}

// parseISODate 接受 RFC3339 时间戳或纯日期。
func parseISODate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
