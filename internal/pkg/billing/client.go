package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	defaultBaseURL = "https://v3.recurly.com"
	apiVersion     = "application/vnd.recurly.v2021-02-25+json"
)

// Client Recurly v3 API 客户端。每次调用单次请求，不重试。
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	log        hclog.Logger
}

// NewClient 构造 Recurly 客户端。httpClient 为 nil 时使用 30s 超时的默认客户端，
// baseURL 为空时指向线上 API。
func NewClient(httpClient *http.Client, apiKey, baseURL string, log hclog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    baseURL,
		log:        log,
	}
}

// GetAccount 按 account code 查询账户
// GET /accounts/code-<code>
func (c *Client) GetAccount(ctx context.Context, code string) (*Account, error) {
	path := "/accounts/code-" + url.PathEscape(code)

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, transportError(fmt.Errorf("decode account: %w", err))
	}
	return &account, nil
}

// CreatePurchase 创建 purchase
// POST /purchases
// 成功时返回 provider 的原始响应体，调用方不得改写其中字段。
func (c *Client) CreatePurchase(ctx context.Context, purchase *PurchaseCreate) (json.RawMessage, error) {
	payload, err := json.Marshal(purchase)
	if err != nil {
		return nil, transportError(fmt.Errorf("encode purchase: %w", err))
	}

	c.log.Debug("creating purchase", "account_code", purchase.Account.Code,
		"subscriptions", len(purchase.Subscriptions), "line_items", len(purchase.LineItems))

	body, err := c.do(ctx, http.MethodPost, "/purchases", payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, transportError(err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode >= 300 {
		return nil, c.apiError(resp.StatusCode, body)
	}
	return body, nil
}

// apiError 把 recurly 错误响应解成 *Error，解不开时退化为 transport 错误
func (c *Client) apiError(statusCode int, body []byte) *Error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		c.log.Error("unparseable error response", "status", statusCode, "body", string(body))
		return &Error{
			Kind:       KindTransport,
			Type:       "unknown",
			Message:    fmt.Sprintf("unexpected status %d", statusCode),
			StatusCode: statusCode,
		}
	}

	apiErr := &Error{
		Kind:             kindOf(envelope.Error.Type, statusCode),
		Type:             envelope.Error.Type,
		Message:          envelope.Error.Message,
		Params:           envelope.Error.Params,
		TransactionError: envelope.Error.TransactionError,
		StatusCode:       statusCode,
	}
	if apiErr.TransactionError != nil {
		apiErr.Code = apiErr.TransactionError.Code
	}

	c.log.Error("recurly api error", "status", statusCode, "type", apiErr.Type,
		"message", apiErr.Message, "params", len(apiErr.Params))

	return apiErr
}
