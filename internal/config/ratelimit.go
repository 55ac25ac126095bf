package config

import "time"

// RateLimitConfig drives the Redis token bucket. Volunteers at the
// venue poll the browse endpoints from their phones all day, so the
// default bucket is generous; writes pass through the same limiter
// keyed by client ip and route.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables. Nonsensical
// values are clamped, and the bucket key TTL is held at no less than
// five refill intervals so an idle key only expires well after it has
// fully refilled.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        boolOr("RATE_LIMIT_ENABLED", true),
        Capacity:       intOr("RATE_LIMIT_CAPACITY", 120),
        RefillTokens:   intOr("RATE_LIMIT_REFILL_TOKENS", 2),
        RefillInterval: durOr("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            durOr("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    strOr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         strOr("RATE_LIMIT_PREFIX", "donations:rl"),
        Debug:          boolOr("RATE_LIMIT_DEBUG", false),
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    if min := 5 * cfg.RefillInterval; cfg.TTL < min {
        cfg.TTL = min
    }
    return cfg
}
