package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dressfy/checkout-server/internal/pkg/billing"
)

// 固定的顶层错误文案，前端按原样展示
const (
	MsgMissingFields   = "Missing required fields"
	MsgCheckoutFailed  = "Checkout failed"
	MsgUpsellFailed    = "Upsell failed"
	MsgAccountNotFound = "Account not found"

	hintServerLogs    = "Check server logs for complete error details"
	hintCheckoutFirst = "Customer must complete checkout first before using upsell"
)

// PurchaseResult 成功响应。Purchase 保存 provider 的原始响应体，原样转发。
type PurchaseResult struct {
	Success  bool            `json:"success"`
	Purchase json.RawMessage `json:"purchase"`
}

// ErrorBody 失败响应的统一外层
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details"`
	Hint    string      `json:"hint,omitempty"`
}

// ErrorDetails 规范化后的 provider 错误详情
type ErrorDetails struct {
	Message          string                    `json:"message"`
	Type             string                    `json:"type"`
	Kind             string                    `json:"kind,omitempty"`
	Timestamp        string                    `json:"timestamp"`
	ValidationErrors []billing.Param           `json:"validationErrors,omitempty"`
	TransactionError *billing.TransactionError `json:"transactionError,omitempty"`
	Code             string                    `json:"code,omitempty"`
	StatusCode       int                       `json:"statusCode,omitempty"`
}

// NotFoundDetails 追加购买前置检查失败的详情
type NotFoundDetails struct {
	Email string `json:"email"`
	Hint  string `json:"hint"`
}

// Success 购买成功
func Success(c *gin.Context, purchase json.RawMessage) {
	c.JSON(http.StatusOK, PurchaseResult{
		Success:  true,
		Purchase: purchase,
	})
}

// MissingFields 必填字段缺失，fields 逐字段标注 missing/ok
func MissingFields(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   MsgMissingFields,
		Details: fields,
	})
}

// AccountNotFound 追加购买时账户不存在
func AccountNotFound(c *gin.Context, email string) {
	c.JSON(http.StatusNotFound, ErrorBody{
		Error: MsgAccountNotFound,
		Details: NotFoundDetails{
			Email: email,
			Hint:  hintCheckoutFirst,
		},
	})
}

// CheckoutFailed 结账失败。状态码跟随 provider 返回的状态，拿不到时退回 500。
func CheckoutFailed(c *gin.Context, err error) {
	details := DetailsFromError(err)
	status := http.StatusInternalServerError
	if details.StatusCode > 0 {
		status = details.StatusCode
	}
	c.JSON(status, ErrorBody{
		Error:   MsgCheckoutFailed,
		Details: details,
		Hint:    hintServerLogs,
	})
}

// UpsellFailed 追加购买失败，状态码固定 500
func UpsellFailed(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error:   MsgUpsellFailed,
		Details: DetailsFromError(err),
		Hint:    hintServerLogs,
	})
}

// DetailsFromError 从错误里提取 provider 暴露的全部结构化字段。
// 非 billing 错误（网络层等）只带 message。
func DetailsFromError(err error) ErrorDetails {
	details := ErrorDetails{
		Message:   "An error occurred",
		Type:      "unknown",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err == nil {
		return details
	}
	details.Message = err.Error()

	var apiErr *billing.Error
	if errors.As(err, &apiErr) {
		details.Message = apiErr.Message
		details.Type = apiErr.Type
		details.Kind = string(apiErr.Kind)
		details.ValidationErrors = apiErr.Params
		details.TransactionError = apiErr.TransactionError
		details.Code = apiErr.Code
		details.StatusCode = apiErr.StatusCode
	}
	return details
}
