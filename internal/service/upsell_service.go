package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/dressfy/checkout-server/config"
	"github.com/dressfy/checkout-server/internal/model/dto"
	"github.com/dressfy/checkout-server/internal/pkg/billing"
)

// ErrAccountNotFound 账户查询失败。追加购买是前置门槛：
// 查不到账户就不发起购买，绝不顺手建号。
var ErrAccountNotFound = errors.New("account not found")

type UpsellService struct {
	client *billing.Client
	cfg    *config.Config
	log    hclog.Logger
}

func NewUpsellService(client *billing.Client, cfg *config.Config, log hclog.Logger) *UpsellService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &UpsellService{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Upsell 给已有账户追加一笔一次性购买。
// 先按邮箱查账户，任何查询失败都算账户不存在，不再发起购买。
func (s *UpsellService) Upsell(ctx context.Context, req *dto.UpsellRequest) (json.RawMessage, error) {
	account, err := s.client.GetAccount(ctx, req.CustomerEmail)
	if err != nil {
		s.log.Warn("account lookup failed", "email", req.CustomerEmail, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAccountNotFound, err)
	}
	s.log.Debug("account found", "code", account.Code)

	purchase := s.BuildPurchase(req)

	s.log.Info("creating upsell purchase", "email", req.CustomerEmail,
		"item_code", req.ItemCode)

	result, err := s.client.CreatePurchase(ctx, purchase)
	if err != nil {
		s.log.Error("upsell purchase failed", "email", req.CustomerEmail, "error", err)
		return nil, err
	}

	s.log.Info("upsell purchase created", "email", req.CustomerEmail)
	return result, nil
}

// BuildPurchase 追加购买只带账户 code 和一条收费项，没有订阅。
// 金额未传时不下发 unit_amount，走 Recurly 配置的商品价格。
func (s *UpsellService) BuildPurchase(req *dto.UpsellRequest) *billing.PurchaseCreate {
	item := billing.LineItemCreate{
		Currency: s.cfg.Recurly.Currency,
		ItemCode: req.ItemCode,
	}
	if req.Amount != nil {
		item.UnitAmount = req.Amount
	}

	return &billing.PurchaseCreate{
		Currency: s.cfg.Recurly.Currency,
		Account: billing.AccountPurchase{
			Code: req.CustomerEmail,
		},
		LineItems: []billing.LineItemCreate{item},
	}
}
