package handlers

import (
	"net/http"
	"testing"

	"giftlist-api/internal/models"
	"giftlist-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateList(t *testing.T) {
	t.Run("successfully creates a list", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "POST", "/api/v1/lists", models.CreateListRequest{
			OwnerName:  "Ana",
			OwnerEmail: "ana@x.com",
			ListName:   "Ana's list",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.ListCreatedResponse
		testutil.ParseJSONResponse(t, w, &resp)

		assert.NotEqual(t, uuid.Nil, resp.ListID)
		assert.Len(t, resp.AccessCode, 8)
		assert.Equal(t, "https://gifts.example.com/lista/"+resp.ListID.String(), resp.ShareURL)

		// the stored document starts with an empty gift sequence
		list, err := ts.store.GetList(resp.ListID)
		require.NoError(t, err)
		assert.Empty(t, list.Gifts)
	})

	t.Run("returns 400 for missing fields", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "POST", "/api/v1/lists", map[string]string{
			"ownerName": "Ana",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp models.ErrorResponse
		testutil.ParseJSONResponse(t, w, &errResp)
		assert.Equal(t, "INVALID_INPUT", errResp.Code)
	})

	t.Run("returns 400 for invalid email", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "POST", "/api/v1/lists", models.CreateListRequest{
			OwnerName:  "Ana",
			OwnerEmail: "not-an-email",
			ListName:   "L",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLookup(t *testing.T) {
	t.Run("resolves credentials to the list id", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/lookup", models.LookupRequest{
			OwnerEmail: list.OwnerEmail,
			AccessCode: list.AccessCode,
		}, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.LookupResponse
		testutil.ParseJSONResponse(t, w, &resp)
		assert.Equal(t, list.ID, resp.ListID)
	})

	t.Run("lookup is case-sensitive on email", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/lookup", models.LookupRequest{
			OwnerEmail: "Ana@X.com",
			AccessCode: list.AccessCode,
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var errResp models.ErrorResponse
		testutil.ParseJSONResponse(t, w, &errResp)
		assert.Equal(t, "INVALID_CREDENTIALS", errResp.Code)
	})

	t.Run("wrong access code", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/lookup", models.LookupRequest{
			OwnerEmail: list.OwnerEmail,
			AccessCode: "wrongcode",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetList(t *testing.T) {
	t.Run("returns the document with derived fields", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		seq := models.Gifts{
			testutil.NewTestGift("Socks", models.StatusAvailable),
			testutil.NewTestGift("Book", models.StatusPending),
		}
		_, err := ts.store.ReplaceGifts(list.ID, seq)
		require.NoError(t, err)

		w := ts.do(t, "GET", "/api/v1/lists/"+list.ID.String(), nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.ListResponse
		testutil.ParseJSONResponse(t, w, &resp)

		assert.Equal(t, list.ID, resp.ID)
		assert.Len(t, resp.Gifts, 2)
		assert.Equal(t, 1, resp.PendingCount)
		assert.Equal(t, "https://gifts.example.com/lista/"+list.ID.String(), resp.ShareURL)
		// the document carries its own credentials; they are the share secret
		assert.Equal(t, list.AccessCode, resp.AccessCode)
	})

	t.Run("returns 404 for unknown list", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "GET", "/api/v1/lists/"+uuid.NewString(), nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var errResp models.ErrorResponse
		testutil.ParseJSONResponse(t, w, &errResp)
		assert.Equal(t, "LIST_NOT_FOUND", errResp.Code)
	})

	t.Run("returns 400 for malformed list id", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "GET", "/api/v1/lists/not-a-uuid", nil, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
