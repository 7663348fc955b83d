package dto

// 必填字段不用 binding:"required"：契约要求逐字段返回 missing/ok，
// gin 的绑定错误给不出这种结构，由 handler 自行检查。

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	TokenID       string                 `json:"tokenId"`
	CustomerEmail string                 `json:"customerEmail"`
	CustomerName  string                 `json:"customerName"`
	TrialAmount   float64                `json:"trialAmount"`
	TrialDays     int                    `json:"trialDays"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// UpsellRequest 追加购买请求。Amount 用指针区分「未传」和「传了 0」。
type UpsellRequest struct {
	CustomerEmail string   `json:"customerEmail"`
	ItemCode      string   `json:"itemCode"`
	Amount        *float64 `json:"amount,omitempty"`
}
