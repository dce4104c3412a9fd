package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the gateway reads from the environment. It is
// loaded once in main and handed to constructors; nothing else touches
// os.Getenv at call time.
type Config struct {
	Host string
	Port string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	WalletAPIURL      string
	WalletTimeout     time.Duration
	WalletAgentCode   string
	WalletAgentSecret string

	SessionSecret string

	Environment string

	PlaystarAPIURL     string
	PlaystarAccessKey  string
	SboAPIURL          string
	SboCompanyKey      string
	SboServerID        string
	PragmaticSecret    string
	PragmaticProvider  string
	GoldAPIAgentCode   string
	GoldAPIAgentSecret string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("WALLET_TIMEOUT_SECONDS", 5)
	v.SetDefault("ENVIRONMENT", "staging")

	cfg := &Config{
		Host: v.GetString("HOST"),
		Port: v.GetString("PORT"),

		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

		WalletAPIURL:      v.GetString("WALLET_API_URL"),
		WalletTimeout:     time.Duration(v.GetInt("WALLET_TIMEOUT_SECONDS")) * time.Second,
		WalletAgentCode:   v.GetString("WALLET_AGENT_CODE"),
		WalletAgentSecret: v.GetString("WALLET_AGENT_SECRET"),

		SessionSecret: v.GetString("SESSION_SECRET"),

		Environment: v.GetString("ENVIRONMENT"),

		PlaystarAPIURL:     v.GetString("PLAYSTAR_API_URL"),
		PlaystarAccessKey:  v.GetString("PLAYSTAR_ACCESS_KEY"),
		SboAPIURL:          v.GetString("SBO_API_URL"),
		SboCompanyKey:      v.GetString("SBO_COMPANY_KEY"),
		SboServerID:        v.GetString("SBO_SERVER_ID"),
		PragmaticSecret:    v.GetString("PRAGMATIC_SECRET"),
		PragmaticProvider:  v.GetString("PRAGMATIC_PROVIDER_ID"),
		GoldAPIAgentCode:   v.GetString("GOLD_API_AGENT_CODE"),
		GoldAPIAgentSecret: v.GetString("GOLD_API_AGENT_SECRET"),
	}

	if cfg.WalletAPIURL == "" {
		return nil, fmt.Errorf("WALLET_API_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}
