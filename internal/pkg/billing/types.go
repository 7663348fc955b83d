package billing

// Recurly v3 /purchases 请求体。字段名与 API 完全一致，
// 可选字段用指针 + omitempty 控制是否出现在 JSON 中。

// PurchaseCreate 创建 purchase 的请求
type PurchaseCreate struct {
	Currency      string                 `json:"currency"`
	Account       AccountPurchase        `json:"account"`
	Subscriptions []SubscriptionPurchase `json:"subscriptions,omitempty"`
	LineItems     []LineItemCreate       `json:"line_items"`
}

// AccountPurchase purchase 请求中的账户部分。
// 结账时携带完整信息（首次购买会顺带建号）；追加购买只带 code。
type AccountPurchase struct {
	Code        string             `json:"code"`
	Email       string             `json:"email,omitempty"`
	FirstName   string             `json:"first_name,omitempty"`
	LastName    string             `json:"last_name,omitempty"`
	BillingInfo *BillingInfoCreate `json:"billing_info,omitempty"`
}

// BillingInfoCreate 支付信息，只包含前端 recurly.js 生成的一次性 token
type BillingInfoCreate struct {
	TokenID string `json:"token_id"`
}

// SubscriptionPurchase 订阅项
type SubscriptionPurchase struct {
	PlanCode    string `json:"plan_code"`
	TrialEndsAt string `json:"trial_ends_at,omitempty"`
}

// LineItemCreate 一次性收费项。UnitAmount 为 nil 时不下发，
// 由 Recurly 后台配置的商品价格生效。
type LineItemCreate struct {
	Currency   string   `json:"currency"`
	ItemCode   string   `json:"item_code"`
	UnitAmount *float64 `json:"unit_amount,omitempty"`
}

// Account Recurly 账户记录（只解出本服务用到的字段）
type Account struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	State     string `json:"state"`
}
