package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheTTLPerEndpointClass(t *testing.T) {
	cfg := CacheConfig{
		DefaultTTL:   30 * time.Second,
		CatalogTTL:   5 * time.Minute,
		InventoryTTL: 10 * time.Second,
		LedgerTTL:    30 * time.Second,
	}

	// Near-static catalog endpoints cache the longest.
	assert.Equal(t, 5*time.Minute, cfg.TTLFor("/v1/items"))
	assert.Equal(t, 5*time.Minute, cfg.TTLFor("/v1/teams"))

	// The derived inventory changes with every donation or allocation.
	assert.Equal(t, 10*time.Second, cfg.TTLFor("/v1/inventory"))

	// Ledger reads sit in between.
	assert.Equal(t, 30*time.Second, cfg.TTLFor("/v1/allocations"))
	assert.Equal(t, 30*time.Second, cfg.TTLFor("/v1/contributions"))
	assert.Equal(t, 30*time.Second, cfg.TTLFor("/v1/bills/:code/:id"))

	// Anything unclassified falls back to the default.
	assert.Equal(t, 30*time.Second, cfg.TTLFor("/healthz"))
}
