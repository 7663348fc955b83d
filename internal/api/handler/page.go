package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dressfy/checkout-server/config"
)

type PageHandler struct {
	cfg *config.Config
}

func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index 渲染结账页，注入 recurly.js 公钥和演示用的追加购买参数
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "checkout.html", gin.H{
		"PublicKey":      h.cfg.Recurly.PublicKey,
		"UpsellItemCode": h.cfg.Recurly.UpsellItemCode,
		"UpsellAmount":   h.cfg.Recurly.UpsellAmount,
	})
}
