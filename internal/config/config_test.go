package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, "comanda-pos", cfg.App.Name)
	assert.Equal(t, int64(1000), cfg.Order.StartOffset)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("ORDER_START_OFFSET", "5000")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg := Load()

	assert.Equal(t, int64(5000), cfg.Order.StartOffset)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestStoreConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, (&StoreConfig{}).Location())
	assert.Equal(t, time.UTC, (&StoreConfig{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "America/Sao_Paulo", (&StoreConfig{Timezone: "America/Sao_Paulo"}).Location().String())
}
