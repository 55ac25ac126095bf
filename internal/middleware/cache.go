package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/nagarjunr/donation-tracker/internal/config"
)

// recordingWriter tees the response body past the client so a
// successful read can be stored after it has been served.
type recordingWriter struct {
    http.ResponseWriter
    status int
    body   bytes.Buffer
    size   int
}

func (w *recordingWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
    w.size += len(b)
    w.body.Write(b)
    return w.ResponseWriter.Write(b)
}

// cachedResponse is the stored form of a response. Headers are kept so
// a hit replays exactly what the origin sent, pretty-printing included.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// cacheKey hashes the request path and query under the configured
// prefix. The raw path is used so parameterized lookups (each bill,
// each supervisor filter) cache independently.
func cacheKey(prefix, path, query string) string {
    sum := sha1.Sum([]byte(path + "?" + query))
    return fmt.Sprintf("%s:%x", prefix, sum)
}

// NewRedisCache caches successful GET responses in Redis with the TTL
// chosen per endpoint class: short for the derived inventory, long for
// the near-static catalog, in between for the ledgers. Responses larger
// than MaxBodyBytes are served but never stored. A nil client disables
// caching entirely.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, c.Request().URL.Path, c.Request().URL.RawQuery)

            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var cached cachedResponse
                if json.Unmarshal(raw, &cached) == nil {
                    for k, vals := range cached.Header {
                        if strings.EqualFold(k, "Content-Length") {
                            continue // Echo recomputes it
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(cached.Status)
                    if len(cached.Body) > 0 {
                        _, _ = c.Response().Write(cached.Body)
                    }
                    return nil
                }
            }

            w := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = w
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if w.status != http.StatusOK {
                return nil
            }
            if cfg.MaxBodyBytes > 0 && w.size > cfg.MaxBodyBytes {
                return nil
            }

            hdr := make(http.Header, len(c.Response().Header()))
            for k, vals := range c.Response().Header() {
                hdr[k] = append([]string(nil), vals...)
            }
            payload, err := json.Marshal(cachedResponse{Status: w.status, Header: hdr, Body: w.body.Bytes()})
            if err != nil {
                return nil
            }
            // Detached context: the store must not race request teardown.
            _ = rdb.SetEx(context.Background(), key, payload, cfg.TTLFor(c.Path())).Err()
            return nil
        }
    }
}
