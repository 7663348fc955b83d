package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dressfy/checkout-server/internal/pkg/billing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, json.RawMessage(`{"id":"purchase-1"}`))
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"purchase":{"id":"purchase-1"}}`, w.Body.String())
}

func TestMissingFields(t *testing.T) {
	w := serve(func(c *gin.Context) {
		MissingFields(c, map[string]string{"tokenId": "missing", "customerEmail": "ok"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgMissingFields, body.Error)

	details := body.Details.(map[string]interface{})
	assert.Equal(t, "missing", details["tokenId"])
	assert.Equal(t, "ok", details["customerEmail"])
}

func TestAccountNotFound(t *testing.T) {
	w := serve(func(c *gin.Context) {
		AccountNotFound(c, "qa.qa@example.com")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgAccountNotFound, body.Error)

	details := body.Details.(map[string]interface{})
	assert.Equal(t, "qa.qa@example.com", details["email"])
	assert.NotEmpty(t, details["hint"])
}

func TestCheckoutFailed_UsesProviderStatus(t *testing.T) {
	apiErr := &billing.Error{
		Kind:       billing.KindValidation,
		Type:       "validation",
		Message:    "Token is invalid",
		StatusCode: 422,
	}

	w := serve(func(c *gin.Context) {
		CheckoutFailed(c, apiErr)
	})

	assert.Equal(t, 422, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgCheckoutFailed, body.Error)
	assert.NotEmpty(t, body.Hint)
}

func TestCheckoutFailed_FallsBackTo500(t *testing.T) {
	w := serve(func(c *gin.Context) {
		CheckoutFailed(c, errors.New("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpsellFailed_Always500(t *testing.T) {
	apiErr := &billing.Error{
		Kind:       billing.KindValidation,
		Type:       "validation",
		Message:    "Item is not active",
		StatusCode: 422,
	}

	w := serve(func(c *gin.Context) {
		UpsellFailed(c, apiErr)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgUpsellFailed, body.Error)
}

func TestDetailsFromError_BillingError(t *testing.T) {
	apiErr := &billing.Error{
		Kind:    billing.KindTransaction,
		Type:    "transaction",
		Message: "Your card was declined",
		Params:  []billing.Param{{Param: "number", Message: "is invalid"}},
		TransactionError: &billing.TransactionError{
			Code:     "card_declined",
			Category: "hard",
		},
		Code:       "card_declined",
		StatusCode: 422,
	}

	details := DetailsFromError(apiErr)

	assert.Equal(t, "Your card was declined", details.Message)
	assert.Equal(t, "transaction", details.Type)
	assert.Equal(t, "transaction", details.Kind)
	assert.Equal(t, apiErr.Params, details.ValidationErrors)
	assert.Equal(t, apiErr.TransactionError, details.TransactionError)
	assert.Equal(t, "card_declined", details.Code)
	assert.Equal(t, 422, details.StatusCode)

	ts, err := time.Parse(time.RFC3339, details.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestDetailsFromError_PlainError(t *testing.T) {
	details := DetailsFromError(errors.New("dial tcp: connection refused"))

	assert.Equal(t, "dial tcp: connection refused", details.Message)
	assert.Equal(t, "unknown", details.Type)
	assert.Empty(t, details.ValidationErrors)
	assert.Nil(t, details.TransactionError)
	assert.Zero(t, details.StatusCode)
}

func TestDetailsFromError_WrappedBillingError(t *testing.T) {
	apiErr := &billing.Error{
		Kind:       billing.KindNotFound,
		Type:       "not_found",
		Message:    "Couldn't find Account",
		StatusCode: 404,
	}
	wrapped := errors.Join(errors.New("account lookup"), apiErr)

	details := DetailsFromError(wrapped)

	assert.Equal(t, "Couldn't find Account", details.Message)
	assert.Equal(t, "not_found", details.Type)
	assert.Equal(t, 404, details.StatusCode)
}
