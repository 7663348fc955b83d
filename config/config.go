package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Recurly RecurlyConfig `mapstructure:"recurly"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type RecurlyConfig struct {
	PrivateKey string `mapstructure:"private_key"` // 只从环境变量 RECURLY_PRIVATE_KEY 读取
	PublicKey  string `mapstructure:"public_key"`  // 前端 recurly.js 使用的公钥
	BaseURL    string `mapstructure:"base_url"`    // 留空时使用 billing 包默认地址

	PlanCode         string  `mapstructure:"plan_code"`
	Currency         string  `mapstructure:"currency"`
	TrialItemCode    string  `mapstructure:"trial_item_code"`
	DefaultTrialDays int     `mapstructure:"default_trial_days"`
	UpsellItemCode   string  `mapstructure:"upsell_item_code"`
	UpsellAmount     float64 `mapstructure:"upsell_amount"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = viper.BindEnv("recurly.private_key", "RECURLY_PRIVATE_KEY")
	_ = viper.BindEnv("recurly.public_key", "RECURLY_PUBLIC_KEY")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Recurly.Currency == "" {
		cfg.Recurly.Currency = "USD"
	}
	if cfg.Recurly.PlanCode == "" {
		cfg.Recurly.PlanCode = "dressfy"
	}
	if cfg.Recurly.TrialItemCode == "" {
		cfg.Recurly.TrialItemCode = "paid-trial"
	}
	if cfg.Recurly.DefaultTrialDays <= 0 {
		cfg.Recurly.DefaultTrialDays = 7
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
