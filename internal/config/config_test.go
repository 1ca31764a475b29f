package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks the variables Load reads so tests are isolated from the
// host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL",
		"SHOPIFY_SHOP_DOMAIN", "SHOPIFY_ACCESS_TOKEN", "SHOPIFY_API_VERSION", "SHOPIFY_API_URL",
		"CONFIGURATOR_SIGNATURE_SECRET",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "2026-01", cfg.Shopify.APIVersion)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SHOPIFY_SHOP_DOMAIN", " test-shop.myshopify.com ")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("CONFIGURATOR_SIGNATURE_SECRET", "sig-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "test-shop.myshopify.com", cfg.Shopify.ShopDomain, "domain is trimmed")
	assert.Equal(t, "sig-secret", cfg.SignatureSecret)
	assert.True(t, cfg.HasShopifyCredentials())
}

func TestLoadWithoutShopifyCredentials(t *testing.T) {
	// Load must not fail: the handler reports missing_env per request.
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.HasShopifyCredentials())
}

func TestHasShopifyCredentials(t *testing.T) {
	cfg := &Config{Shopify: ShopifyConfig{ShopDomain: "d", AccessToken: "t"}}
	assert.True(t, cfg.HasShopifyCredentials())

	cfg.Shopify.AccessToken = ""
	assert.False(t, cfg.HasShopifyCredentials())

	cfg = &Config{Shopify: ShopifyConfig{AccessToken: "t"}}
	assert.False(t, cfg.HasShopifyCredentials())
}
