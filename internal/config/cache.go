package config

import (
    "os"
    "strings"
    "time"
)

// CacheConfig drives the Redis response cache on the public read
// endpoints. TTLs are chosen per endpoint class: the derived inventory
// changes with every recorded donation or allocation and must stay
// fresh, while the item catalog and team list barely move once an
// event is underway.
type CacheConfig struct {
    Enabled      bool
    Prefix       string
    DefaultTTL   time.Duration
    CatalogTTL   time.Duration // /v1/items, /v1/teams
    InventoryTTL time.Duration // /v1/inventory
    LedgerTTL    time.Duration // /v1/allocations, /v1/contributions, /v1/bills
    MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* variables, falling back to
// per-class defaults tuned for a running event.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      boolOr("CACHE_ENABLED", true),
        Prefix:       strOr("CACHE_PREFIX", "donations:cache"),
        DefaultTTL:   durOr("CACHE_TTL", 30*time.Second),
        CatalogTTL:   durOr("CACHE_TTL_CATALOG", 5*time.Minute),
        InventoryTTL: durOr("CACHE_TTL_INVENTORY", 10*time.Second),
        LedgerTTL:    durOr("CACHE_TTL_LEDGER", 30*time.Second),
        MaxBodyBytes: intOr("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

// TTLFor returns the cache lifetime for a route, picked by endpoint
// class. Unknown routes get the default.
func (c CacheConfig) TTLFor(route string) time.Duration {
    switch {
    case strings.HasPrefix(route, "/v1/items"), strings.HasPrefix(route, "/v1/teams"):
        return c.CatalogTTL
    case strings.HasPrefix(route, "/v1/inventory"):
        return c.InventoryTTL
    case strings.HasPrefix(route, "/v1/allocations"),
        strings.HasPrefix(route, "/v1/contributions"),
        strings.HasPrefix(route, "/v1/bills"):
        return c.LedgerTTL
    }
    return c.DefaultTTL
}

// strOr, boolOr and durOr extend the intOr family from config.go for
// the optional cache, rate limit and Redis settings.
func strOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func boolOr(key string, def bool) bool {
    switch strings.ToLower(os.Getenv(key)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return def
}

func durOr(key string, def time.Duration) time.Duration {
    if v := os.Getenv(key); v != "" {
        if d, err := time.ParseDuration(v); err == nil {
            return d
        }
    }
    return def
}
