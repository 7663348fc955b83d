package testutil

import "github.com/dressfy/checkout-server/config"

// TestConfig 测试用配置，取值与线上默认一致
func TestConfig() *config.Config {
	return &config.Config{
		Recurly: config.RecurlyConfig{
			PrivateKey:       "test-private-key",
			PublicKey:        "test-public-key",
			PlanCode:         "dressfy",
			Currency:         "USD",
			TrialItemCode:    "paid-trial",
			DefaultTrialDays: 7,
			UpsellItemCode:   "premium-addon",
			UpsellAmount:     29.99,
		},
	}
}
