package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarjunr/donation-tracker/internal/config"
	"github.com/nagarjunr/donation-tracker/internal/repository"
)

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(config.Config{}, repository.NewStaffRepo(nil), repository.NewTokenRepo(nil))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h := newAuthHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/register",
		`{"email":"desk@example.com","password":"pw","role":"MANAGER"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "role must be STAFF or ADMIN", body["error"])
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	h := newAuthHandler()
	for _, body := range []string{
		`{"password":"pw"}`,
		`{"email":"desk@example.com"}`,
		`{}`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/v1/auth/register", body)
		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestLogoutWithoutCredentials(t *testing.T) {
	h := newAuthHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/logout", `{}`)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
