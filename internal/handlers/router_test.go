package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giftlist-api/internal/middleware"
	"giftlist-api/internal/models"
	"giftlist-api/internal/session"
	"giftlist-api/internal/storage"
	"giftlist-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testServer wires handlers, storage and the session guard into a router the
// way cmd/server does, against in-memory storage.
type testServer struct {
	router *gin.Engine
	store  storage.Store
	guard  session.Guard
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewStorage()
	guard := session.NewMemoryGuard()

	listHandler := NewListHandler(store, "https://gifts.example.com")
	sessionHandler := NewSessionHandler(store, guard)
	giftHandler := NewGiftHandler(store)

	router := gin.New()
	v1 := router.Group("/api/v1")
	lists := v1.Group("/lists")
	{
		lists.POST("", listHandler.CreateList)
		lists.POST("/lookup", listHandler.Lookup)
		lists.GET("/:listId", listHandler.GetList)
		lists.POST("/:listId/gifts/:giftId/request", giftHandler.RequestGift)

		lists.POST("/:listId/session", sessionHandler.Login)
		lists.GET("/:listId/session", sessionHandler.Status)
		lists.DELETE("/:listId/session", sessionHandler.Logout)

		admin := lists.Group("/:listId/gifts", middleware.AdminSession(guard))
		{
			admin.POST("", giftHandler.CreateGift)
			admin.PUT("/:giftId", giftHandler.UpdateGift)
			admin.DELETE("/:giftId", giftHandler.DeleteGift)
			admin.POST("/:giftId/approve", giftHandler.ApproveGift)
			admin.POST("/:giftId/reject", giftHandler.RejectGift)
		}
	}

	return &testServer{router: router, store: store, guard: guard}
}

// do runs a JSON request through the router.
func (ts *testServer) do(t *testing.T, method, url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = testutil.MakeJSONRequest(t, method, url, body)
	} else {
		req = httptest.NewRequest(method, url, http.NoBody)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// createList seeds a list and returns the stored document.
func (ts *testServer) createList(t *testing.T) *models.List {
	t.Helper()
	list, err := ts.store.CreateList(models.CreateListRequest{
		OwnerName:  "Ana",
		OwnerEmail: "ana@x.com",
		ListName:   "Ana's list",
	})
	require.NoError(t, err)
	return list
}

// adminHeaders logs in as the list owner and returns the session header.
func (ts *testServer) adminHeaders(t *testing.T, list *models.List) map[string]string {
	t.Helper()
	sess, err := ts.guard.Authenticate(list.ID, list.OwnerEmail, list.AccessCode, list)
	require.NoError(t, err)
	return map[string]string{middleware.SessionTokenHeader: sess.Token}
}
