package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dressfy/checkout-server/internal/model/dto"
	"github.com/dressfy/checkout-server/internal/pkg/response"
	"github.com/dressfy/checkout-server/internal/service"
)

type UpsellHandler struct {
	upsellService *service.UpsellService
}

func NewUpsellHandler(upsellService *service.UpsellService) *UpsellHandler {
	return &UpsellHandler{
		upsellService: upsellService,
	}
}

// Upsell 给已结账的账户追加一次性购买
// POST /api/upsell
func (h *UpsellHandler) Upsell(c *gin.Context) {
	var req dto.UpsellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.MissingFields(c, map[string]string{
			"customerEmail": "missing",
			"itemCode":      "missing",
		})
		return
	}

	fields := map[string]string{
		"customerEmail": presence(req.CustomerEmail),
		"itemCode":      presence(req.ItemCode),
	}
	if hasMissing(fields) {
		response.MissingFields(c, fields)
		return
	}

	purchase, err := h.upsellService.Upsell(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.AccountNotFound(c, req.CustomerEmail)
			return
		}
		response.UpsellFailed(c, err)
		return
	}

	response.Success(c, purchase)
}
