// Package testutil 提供测试用的内存版 Recurly API
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeRecurly 内存版 Recurly API。测试把它的 URL 当 baseURL 传给 billing.NewClient。
type FakeRecurly struct {
	Server *httptest.Server

	mu              sync.Mutex
	accounts        map[string]bool
	purchaseCalls   int
	lastPurchase    []byte
	purchaseBody    string
	failStatus      int
	failBody        string
	lastAuth        string
	lastAcceptValue string
}

func NewFakeRecurly(t *testing.T) *FakeRecurly {
	t.Helper()

	f := &FakeRecurly{
		accounts:     make(map[string]bool),
		purchaseBody: `{"id":"purchase-1","currency":"USD"}`,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeRecurly) URL() string {
	return f.Server.URL
}

// AddAccount 预置一个账户，code 即客户邮箱
func (f *FakeRecurly) AddAccount(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[code] = true
}

// SetPurchaseBody 指定 POST /purchases 成功时返回的原始响应体
func (f *FakeRecurly) SetPurchaseBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchaseBody = body
}

// FailPurchase 让后续的 POST /purchases 返回指定状态码和错误体
func (f *FakeRecurly) FailPurchase(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
	f.failBody = body
}

// PurchaseCalls 已收到的 purchase 创建请求数
func (f *FakeRecurly) PurchaseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.purchaseCalls
}

// LastPurchase 解码最近一次 purchase 请求体
func (f *FakeRecurly) LastPurchase(t *testing.T) map[string]interface{} {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastPurchase == nil {
		t.Fatal("no purchase request was received")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(f.lastPurchase, &decoded); err != nil {
		t.Fatalf("failed to decode purchase request: %v", err)
	}
	return decoded
}

// LastAuth 最近一次请求的 Authorization 头
func (f *FakeRecurly) LastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

// LastAccept 最近一次请求的 Accept 头
func (f *FakeRecurly) LastAccept() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAcceptValue
}

func (f *FakeRecurly) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastAuth = r.Header.Get("Authorization")
	f.lastAcceptValue = r.Header.Get("Accept")

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/accounts/code-"):
		code := strings.TrimPrefix(r.URL.Path, "/accounts/code-")
		if !f.accounts[code] {
			writeJSON(w, http.StatusNotFound, fmt.Sprintf(
				`{"error":{"type":"not_found","message":"Couldn't find Account with code = %s"}}`, code))
			return
		}
		writeJSON(w, http.StatusOK, fmt.Sprintf(
			`{"id":"acct-1","code":%q,"email":%q,"state":"active"}`, code, code))

	case r.Method == http.MethodPost && r.URL.Path == "/purchases":
		f.purchaseCalls++
		body, _ := io.ReadAll(r.Body)
		f.lastPurchase = body

		if f.failStatus > 0 {
			writeJSON(w, f.failStatus, f.failBody)
			return
		}
		writeJSON(w, http.StatusCreated, f.purchaseBody)

	default:
		writeJSON(w, http.StatusNotFound,
			`{"error":{"type":"not_found","message":"Route not found"}}`)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
