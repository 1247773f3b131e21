package handlers

import (
	"net/http"
	"testing"

	"giftlist-api/internal/models"
	"giftlist-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionLogin(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/"+list.ID.String()+"/session", models.SessionLoginRequest{
			OwnerEmail: list.OwnerEmail,
			AccessCode: list.AccessCode,
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.SessionResponse
		testutil.ParseJSONResponse(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.False(t, resp.ExpiresAt.IsZero())
		assert.True(t, ts.guard.CheckSession(list.ID))
	})

	t.Run("email is normalized, code is not", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/"+list.ID.String()+"/session", models.SessionLoginRequest{
			OwnerEmail: "ANA@X.COM",
			AccessCode: " " + list.AccessCode + " ",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects wrong credentials without a session", func(t *testing.T) {
		ts := newTestServer(t)
		list := ts.createList(t)

		w := ts.do(t, "POST", "/api/v1/lists/"+list.ID.String()+"/session", models.SessionLoginRequest{
			OwnerEmail: list.OwnerEmail,
			AccessCode: "wrongcode",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var errResp models.ErrorResponse
		testutil.ParseJSONResponse(t, w, &errResp)
		assert.Equal(t, "INVALID_CREDENTIALS", errResp.Code)
		assert.False(t, ts.guard.CheckSession(list.ID))
	})

	t.Run("404 for unknown list", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, "POST", "/api/v1/lists/"+uuid.NewString()+"/session", models.SessionLoginRequest{
			OwnerEmail: "ana@x.com",
			AccessCode: "whatever1",
		}, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionStatus(t *testing.T) {
	ts := newTestServer(t)
	list := ts.createList(t)

	w := ts.do(t, "GET", "/api/v1/lists/"+list.ID.String()+"/session", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionStatusResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.False(t, resp.Authenticated)

	ts.adminHeaders(t, list)

	w = ts.do(t, "GET", "/api/v1/lists/"+list.ID.String()+"/session", nil, nil)
	testutil.ParseJSONResponse(t, w, &resp)
	assert.True(t, resp.Authenticated)
}

func TestSessionLogout(t *testing.T) {
	ts := newTestServer(t)
	list := ts.createList(t)
	headers := ts.adminHeaders(t, list)

	w := ts.do(t, "DELETE", "/api/v1/lists/"+list.ID.String()+"/session", nil, headers)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, ts.guard.CheckSession(list.ID))

	// admin routes are gated again after logout
	w = ts.do(t, "POST", "/api/v1/lists/"+list.ID.String()+"/gifts", models.CreateGiftRequest{
		Name: "Socks",
	}, headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
