package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONContext builds an echo context carrying a JSON body, for
// exercising handlers without a running server.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestZipLines(t *testing.T) {
	cases := []struct {
		name    string
		ids     []uint64
		qtys    []float64
		wantErr string
	}{
		{"valid", []uint64{1, 2}, []float64{5, 2.5}, ""},
		{"size mismatch", []uint64{1, 2}, []float64{5}, "item_ids and quantities must have the same size"},
		{"empty", nil, nil, "at least one item/quantity line is required"},
		{"zero item id", []uint64{0}, []float64{5}, "item ids must be positive"},
		{"zero quantity", []uint64{1}, []float64{0}, "quantities must be positive"},
		{"negative quantity", []uint64{1}, []float64{-2}, "quantities must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines, msg := zipLines(tc.ids, tc.qtys)
			assert.Equal(t, tc.wantErr, msg)
			if tc.wantErr == "" {
				require.Len(t, lines, len(tc.ids))
				assert.Equal(t, tc.ids[0], lines[0].ItemID)
				assert.Equal(t, tc.qtys[0], lines[0].Quantity)
			} else {
				assert.Nil(t, lines)
			}
		})
	}
}

func TestGetStaffID(t *testing.T) {
	c, _ := newJSONContext(http.MethodGet, "/", "")

	// JWT claims decode numbers as float64.
	c.Set("user_id", float64(42))
	id, err := getStaffID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.Set("user_id", "17")
	id, err = getStaffID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), id)

	c.Set("user_id", nil)
	_, err = getStaffID(c)
	assert.Error(t, err)
}
