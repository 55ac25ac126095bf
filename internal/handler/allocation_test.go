package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarjunr/donation-tracker/internal/repository"
)

func newAllocationHandler() *AllocationHandler {
	return NewAllocationHandler(repository.NewAllocationRepo(nil), repository.NewCookingTeamRepo(nil))
}

func TestAllocateRequiresTeamID(t *testing.T) {
	h := newAllocationHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/allocations", `{"item_ids":[1],"quantities":[5]}`)

	require.NoError(t, h.Allocate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cooking_team_id is required", body["error"])
}

func TestAllocateRejectsMismatchedLines(t *testing.T) {
	h := newAllocationHandler()
	c, rec := newJSONContext(http.MethodPost, "/v1/allocations",
		`{"cooking_team_id":1,"item_ids":[1,2],"quantities":[5]}`)

	require.NoError(t, h.Allocate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllocateRejectsNonPositiveQuantities(t *testing.T) {
	h := newAllocationHandler()
	for _, body := range []string{
		`{"cooking_team_id":1,"item_ids":[1],"quantities":[0]}`,
		`{"cooking_team_id":1,"item_ids":[1],"quantities":[-3]}`,
		`{"cooking_team_id":1,"item_ids":[],"quantities":[]}`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/v1/allocations", body)
		require.NoError(t, h.Allocate(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}
