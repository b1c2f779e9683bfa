package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEconomicsConfig(t *testing.T) {
	cfg, err := LoadEconomicsConfig()
	require.NoError(t, err)

	assert.Equal(t, "1000.000000", cfg.InitialBalance().StringFixed(6))
	assert.Equal(t, int64(100), cfg.Economics.User.InitialReputation)
	assert.Equal(t, "general", cfg.Economics.Market.DefaultCategory)
	assert.True(t, cfg.MinimumStake().IsPositive())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}
