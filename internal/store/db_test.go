package store

import (
	"testing"
	"time"

	"github.com/kiranshivaraju/cardapio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL:             "postgres://u:p@localhost:5432/cardapio?sslmode=disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, int32(5), cfg.MinConns)
	assert.Equal(t, 10*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "cardapio", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_IdleCappedByMax(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL:          "postgres://u:p@localhost:5432/cardapio",
		MaxOpenConns: 2,
		MaxIdleConns: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), cfg.MinConns)
}

func TestPoolConfig_KeepsExplicitApplicationName(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL: "postgres://u:p@localhost:5432/cardapio?application_name=worker",
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_InvalidURL(t *testing.T) {
	_, err := poolConfig(config.DatabaseConfig{URL: "postgres://u:p@localhost:notaport/cardapio"})
	assert.ErrorContains(t, err, "parse database URL")
}
