package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarjunr/donation-tracker/internal/repository"
)

func newContributionHandler() *ContributionHandler {
	return NewContributionHandler(repository.NewBillRepo(nil))
}

func TestRecordContributionRequiresBillKey(t *testing.T) {
	h := newContributionHandler()
	for _, body := range []string{
		`{"bill_id":3,"donar_name":"Anand","item_ids":[1],"quantities":[5]}`,
		`{"bill_book_code":"B1","donar_name":"Anand","item_ids":[1],"quantities":[5]}`,
		`{"bill_book_code":"  ","bill_id":3,"donar_name":"Anand","item_ids":[1],"quantities":[5]}`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/v1/contributions", body)
		require.NoError(t, h.RecordContribution(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRecordContributionRequiresDonarName(t *testing.T) {
	h := newContributionHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/contributions",
		`{"bill_book_code":"B1","bill_id":3,"donar_name":" ","item_ids":[1],"quantities":[5]}`)

	require.NoError(t, h.RecordContribution(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "donar name is required", body["error"])
}

func TestRecordContributionRejectsBadLines(t *testing.T) {
	h := newContributionHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/contributions",
		`{"bill_book_code":"B1","bill_id":3,"donar_name":"Anand","item_ids":[1,2],"quantities":[5]}`)

	require.NoError(t, h.RecordContribution(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillKeyFromPath(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		id      string
		wantMsg string
	}{
		{"valid", "B1", "7", ""},
		{"blank code", "  ", "7", "bill book code is required"},
		{"non-numeric id", "B1", "abc", "invalid bill id"},
		{"zero id", "B1", "0", "invalid bill id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodGet, "/", "")
			c.SetParamNames("code", "id")
			c.SetParamValues(tc.code, tc.id)

			code, id, msg := billKeyFromPath(c)
			assert.Equal(t, tc.wantMsg, msg)
			if tc.wantMsg == "" {
				assert.Equal(t, "B1", code)
				assert.Equal(t, uint64(7), id)
			}
		})
	}
}
