package middleware

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedResponseRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	in := cachedResponse{
		Status: http.StatusOK,
		Header: hdr,
		Body:   []byte(`{"inventory":[]}`),
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out cachedResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, http.StatusOK, out.Status)
	assert.Equal(t, "application/json", out.Header.Get("Content-Type"))
	assert.Equal(t, in.Body, out.Body)
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("donations:cache", "/v1/inventory", "")
	b := cacheKey("donations:cache", "/v1/inventory", "")
	assert.Equal(t, a, b)

	// Query and path must both contribute to the key.
	assert.NotEqual(t, a, cacheKey("donations:cache", "/v1/allocations", ""))
	assert.NotEqual(t,
		cacheKey("donations:cache", "/v1/allocations", "supervisor=ravi"),
		cacheKey("donations:cache", "/v1/allocations", "supervisor=kumar"))
}
