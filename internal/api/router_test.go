package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dressfy/checkout-server/internal/api/handler"
	"github.com/dressfy/checkout-server/internal/pkg/billing"
	"github.com/dressfy/checkout-server/internal/service"
	"github.com/dressfy/checkout-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *testutil.FakeRecurly) {
	t.Helper()

	fake := testutil.NewFakeRecurly(t)
	cfg := testutil.TestConfig()
	client := billing.NewClient(nil, cfg.Recurly.PrivateKey, fake.URL(), nil)

	checkoutService := service.NewCheckoutService(client, cfg, nil)
	upsellService := service.NewUpsellService(client, cfg, nil)

	router := NewRouter(
		handler.NewCheckoutHandler(checkoutService),
		handler.NewUpsellHandler(upsellService),
		handler.NewPageHandler(cfg),
		cfg,
		nil,
	)
	return router.Setup(), fake
}

func TestRouter_CheckoutPage(t *testing.T) {
	engine, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// 页面要带上 recurly 公钥
	assert.Contains(t, w.Body.String(), "test-public-key")
	assert.Contains(t, w.Body.String(), "data-recurly")
}

func TestRouter_CheckoutEndpoint(t *testing.T) {
	engine, _ := setupRouter(t)

	body := bytes.NewBufferString(`{"tokenId":"tok-1","customerEmail":"a@b.c","customerName":"Ana"}`)
	req := httptest.NewRequest("POST", "/api/checkout", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestRouter_UpsellEndpoint(t *testing.T) {
	engine, fake := setupRouter(t)
	fake.AddAccount("a@b.c")

	body := bytes.NewBufferString(`{"customerEmail":"a@b.c","itemCode":"premium-addon"}`)
	req := httptest.NewRequest("POST", "/api/upsell", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	engine, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
