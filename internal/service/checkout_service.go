package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dressfy/checkout-server/config"
	"github.com/dressfy/checkout-server/internal/model/dto"
	"github.com/dressfy/checkout-server/internal/pkg/billing"
)

// 姓氏兜底值：客户只填了一个名字时使用
const placeholderLastName = "Customer"

type CheckoutService struct {
	client *billing.Client
	cfg    *config.Config
	log    hclog.Logger
}

func NewCheckoutService(client *billing.Client, cfg *config.Config, log hclog.Logger) *CheckoutService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &CheckoutService{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Checkout 组装 purchase 请求并创建购买。
// 对 Recurly 只调用一次，不重试，也没有幂等键——重复提交可能产生重复购买，
// 这是演示系统的已知限制，保持与线上行为一致。
func (s *CheckoutService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (json.RawMessage, error) {
	purchase := s.BuildPurchase(req, time.Now())

	s.log.Info("creating checkout purchase", "email", req.CustomerEmail,
		"trial_amount", req.TrialAmount, "trial_days", req.TrialDays)

	result, err := s.client.CreatePurchase(ctx, purchase)
	if err != nil {
		s.log.Error("checkout purchase failed", "email", req.CustomerEmail, "error", err)
		return nil, err
	}

	s.log.Info("checkout purchase created", "email", req.CustomerEmail)
	return result, nil
}

// BuildPurchase 把结账请求翻译成 Recurly purchase 请求。
// 账户 code 就是客户邮箱原串，结账和追加购买靠它关联。
func (s *CheckoutService) BuildPurchase(req *dto.CheckoutRequest, now time.Time) *billing.PurchaseCreate {
	trialDays := req.TrialDays
	if trialDays == 0 {
		trialDays = s.cfg.Recurly.DefaultTrialDays
	}
	trialEndsAt := now.AddDate(0, 0, trialDays)

	firstName, lastName := splitCustomerName(req.CustomerName)

	purchase := &billing.PurchaseCreate{
		Currency: s.cfg.Recurly.Currency,
		Account: billing.AccountPurchase{
			Code:      req.CustomerEmail,
			Email:     req.CustomerEmail,
			FirstName: firstName,
			LastName:  lastName,
			BillingInfo: &billing.BillingInfoCreate{
				TokenID: req.TokenID,
			},
		},
		Subscriptions: []billing.SubscriptionPurchase{
			{
				PlanCode:    s.cfg.Recurly.PlanCode,
				TrialEndsAt: trialEndsAt.UTC().Format(time.RFC3339),
			},
		},
		LineItems: []billing.LineItemCreate{},
	}

	// 付费试用金额严格大于 0 才追加收费项
	if req.TrialAmount > 0 {
		amount := req.TrialAmount
		purchase.LineItems = append(purchase.LineItems, billing.LineItemCreate{
			Currency:   s.cfg.Recurly.Currency,
			ItemCode:   s.cfg.Recurly.TrialItemCode,
			UnitAmount: &amount,
		})
	}

	return purchase
}

// splitCustomerName 按空白切分：第一段作 first name，
// 剩余部分用单空格拼成 last name，为空时用兜底姓氏。
func splitCustomerName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", placeholderLastName
	}

	lastName := strings.Join(parts[1:], " ")
	if lastName == "" {
		lastName = placeholderLastName
	}
	return parts[0], lastName
}
