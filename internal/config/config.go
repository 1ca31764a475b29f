package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	Environment     string
	Shopify         ShopifyConfig
	LogLevel        string
	SignatureSecret string // CONFIGURATOR_SIGNATURE_SECRET: verify X-Configurator-Signature on inbound requests; empty disables verification
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	APIURL      string // optional full GraphQL endpoint override (dev/mock servers); normally derived from ShopDomain+APIVersion
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2026-01"),
			APIURL:      strings.TrimSpace(getEnvOrViper("SHOPIFY_API_URL", "")),
		},
		LogLevel:        getEnvOrViper("LOG_LEVEL", "info"),
		SignatureSecret: strings.TrimSpace(getEnvOrViper("CONFIGURATOR_SIGNATURE_SECRET", "")),
	}

	// Shopify credentials are deliberately not required here: the draft-order
	// handler reports missing_env per request so the server can still boot
	// (and serve /health) in a partially configured environment.

	return cfg, nil
}

// HasShopifyCredentials reports whether the Shopify shop domain and access
// token are both configured.
func (c *Config) HasShopifyCredentials() bool {
	return c.Shopify.ShopDomain != "" && c.Shopify.AccessToken != ""
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
