package billing

import "fmt"

// ErrorKind 错误分类，handler 据此选择响应状态码
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"  // 请求体或卡信息不合法
	KindTransaction ErrorKind = "transaction" // 支付网络层拒绝（拒付等）
	KindNotFound    ErrorKind = "not_found"   // 资源不存在
	KindTransport   ErrorKind = "transport"   // 网络 / 解码失败
)

// Param Recurly 返回的字段级校验错误
type Param struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

// TransactionError 拒付详情，原样透传给前端，不做解释
type TransactionError struct {
	Code            string `json:"code,omitempty"`
	Category        string `json:"category,omitempty"`
	Message         string `json:"message,omitempty"`
	MerchantAdvice  string `json:"merchant_advice,omitempty"`
	CustomerMessage string `json:"customer_message,omitempty"`
}

// Error Recurly API 调用失败。保留 provider 返回的全部结构化字段，
// 上层只转发，不解释。
type Error struct {
	Kind             ErrorKind
	Type             string // provider 的错误类型串，如 "validation"
	Message          string
	Params           []Param
	TransactionError *TransactionError
	Code             string
	StatusCode       int // provider 返回的 HTTP 状态码，传输错误时为 0
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("recurly: %s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("recurly: %s", e.Message)
}

// recurly 错误响应体 {"error": {...}}
type errorEnvelope struct {
	Error struct {
		Type             string            `json:"type"`
		Message          string            `json:"message"`
		Params           []Param           `json:"params"`
		TransactionError *TransactionError `json:"transaction_error"`
	} `json:"error"`
}

func kindOf(errType string, statusCode int) ErrorKind {
	switch errType {
	case "not_found":
		return KindNotFound
	case "transaction", "declined":
		return KindTransaction
	case "validation", "invalid_token", "invalid_content_type", "bad_request", "missing_feature":
		return KindValidation
	}
	switch {
	case statusCode == 404:
		return KindNotFound
	case statusCode == 422 || statusCode == 400:
		return KindValidation
	default:
		return KindTransport
	}
}

func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Type:    "transport",
		Message: err.Error(),
	}
}
