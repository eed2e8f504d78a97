package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()
	assert.Equal(t, "pt", cfg.Catalog.PrimaryLanguage)
	assert.Equal(t, []string{"pt", "en", "es"}, cfg.Catalog.SupportedLanguages)
	assert.Equal(t, 300, cfg.Redis.TreeTTL)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("CATALOG_PRIMARY_LANGUAGE", "en")
	t.Setenv("CATALOG_SUPPORTED_LANGUAGES", " en , pt ,,")
	t.Setenv("REDIS_TREE_TTL", "not-a-number")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := LoadEnv()
	assert.Equal(t, "en", cfg.Catalog.PrimaryLanguage)
	assert.Equal(t, []string{"en", "pt"}, cfg.Catalog.SupportedLanguages)
	assert.Equal(t, 300, cfg.Redis.TreeTTL)
	assert.True(t, cfg.Minio.UseSSL)
}
