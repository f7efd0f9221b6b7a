package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"disccount_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingList_OwnershipAndItems(t *testing.T) {
	ts := GetTestServer(t)
	owner := helpers.RegisterUser(t, ts, "listowner")
	other := helpers.RegisterUser(t, ts, "listother")

	res, body := owner.Client.Do(t, http.MethodPost, "/api/v1/shopping-lists", owner.AccessToken, map[string]interface{}{
		"title":     "Weekend",
		"ai_prompt": "cheap pasta dinner",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var list struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))

	res, body = owner.Client.Do(t, http.MethodPost, "/api/v1/shopping-lists/"+list.ID+"/items", owner.AccessToken, map[string]interface{}{
		"product_api_id": "p-1",
		"product_name":   "Spaghetti",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, _ = other.Client.Do(t, http.MethodGet, "/api/v1/shopping-lists/"+list.ID, other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "private lists are hidden from other users")

	res, _ = other.Client.Do(t, http.MethodDelete, "/api/v1/shopping-lists/"+list.ID, other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = owner.Client.Do(t, http.MethodGet, "/api/v1/users/me", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"number_of_ai_prompts":1`)
}

func TestPinnedStores_ReplaceCollapsesDuplicates(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "pinned")

	res, body := s.Client.Do(t, http.MethodPut, "/api/v1/pinned-stores/bulk", s.AccessToken, map[string]interface{}{
		"stores": []map[string]string{
			{"store_api_id": "konzum", "store_name": "Konzum"},
			{"store_api_id": "konzum", "store_name": "Konzum again"},
			{"store_api_id": "lidl", "store_name": "Lidl"},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var stores []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &stores))
	assert.Len(t, stores, 2)

	res, body = s.Client.Do(t, http.MethodPut, "/api/v1/pinned-stores/bulk", s.AccessToken, map[string]interface{}{
		"stores": []map[string]string{{"store_api_id": "unknown-chain", "store_name": "X"}},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestWatchlist_Duplicate(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "watch")

	item := map[string]string{"product_api_id": "p-9", "product_name": "Olive oil"}
	res, body := s.Client.Do(t, http.MethodPost, "/api/v1/watchlist", s.AccessToken, item)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = s.Client.Do(t, http.MethodPost, "/api/v1/watchlist", s.AccessToken, item)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestHealthAndStoreChains(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	res, _ := client.Do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := client.Do(t, http.MethodGet, "/api/v1/store-chains", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "konzum")
}
