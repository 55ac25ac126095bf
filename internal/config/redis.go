package config

// Redis backs the response cache and the rate limiter. Connection
// parameters come from environment variables; when the server cannot be
// reached at startup the constructor returns nil and the API runs with
// caching and rate limiting disabled.

import (
    "context"
    "crypto/tls"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_ADDR (or the REDIS_HOST /
// REDIS_PORT pair, which takes precedence), REDIS_PASSWORD, REDIS_DB
// and REDIS_TLS. It pings once with a short timeout and returns nil
// when the server is unreachable.
func NewRedisClient() *redis.Client {
    addr := strOr("REDIS_ADDR", "")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }

    var tlsConf *tls.Config
    if boolOr("REDIS_TLS", false) {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }

    client := redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        intOr("REDIS_DB", 0),
        TLSConfig: tlsConf,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
