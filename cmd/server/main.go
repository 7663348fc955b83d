package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/dressfy/checkout-server/config"
	"github.com/dressfy/checkout-server/internal/api"
	"github.com/dressfy/checkout-server/internal/api/handler"
	"github.com/dressfy/checkout-server/internal/pkg/billing"
	"github.com/dressfy/checkout-server/internal/service"
)

func main() {
	// .env 仅本地开发用，不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:  "checkout-server",
		Level: hclog.LevelFromString(cfg.Log.Level),
	})

	// 私钥缺失是启动错误，不留到请求阶段才暴露
	if cfg.Recurly.PrivateKey == "" {
		log.Error("RECURLY_PRIVATE_KEY is not defined")
		os.Exit(1)
	}

	client := billing.NewClient(nil, cfg.Recurly.PrivateKey, cfg.Recurly.BaseURL, log.Named("billing"))

	checkoutService := service.NewCheckoutService(client, cfg, log.Named("checkout"))
	upsellService := service.NewUpsellService(client, cfg, log.Named("upsell"))

	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	upsellHandler := handler.NewUpsellHandler(upsellService)
	pageHandler := handler.NewPageHandler(cfg)

	router := api.NewRouter(checkoutHandler, upsellHandler, pageHandler, cfg, log)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("server starting", "addr", addr)
	if err := engine.Run(addr); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
