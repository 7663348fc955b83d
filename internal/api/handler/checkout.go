package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dressfy/checkout-server/internal/model/dto"
	"github.com/dressfy/checkout-server/internal/pkg/response"
	"github.com/dressfy/checkout-server/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Checkout 结账：token + 客户信息 -> 订阅购买（可带付费试用收费项）
// POST /api/checkout
// 没有幂等保护，客户端重复提交可能重复扣款（演示系统已知限制）。
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.MissingFields(c, map[string]string{
			"tokenId":       "missing",
			"customerEmail": "missing",
			"customerName":  "missing",
		})
		return
	}

	// 逐字段检查必填项，缺失时不触达 Recurly
	fields := map[string]string{
		"tokenId":       presence(req.TokenID),
		"customerEmail": presence(req.CustomerEmail),
		"customerName":  presence(req.CustomerName),
	}
	if hasMissing(fields) {
		response.MissingFields(c, fields)
		return
	}

	purchase, err := h.checkoutService.Checkout(c.Request.Context(), &req)
	if err != nil {
		response.CheckoutFailed(c, err)
		return
	}

	response.Success(c, purchase)
}

func presence(value string) string {
	if value == "" {
		return "missing"
	}
	return "ok"
}

func hasMissing(fields map[string]string) bool {
	for _, state := range fields {
		if state == "missing" {
			return true
		}
	}
	return false
}
