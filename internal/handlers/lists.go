package handlers

import (
	"errors"
	"net/http"
	"strings"

	"giftlist-api/internal/models"
	"giftlist-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListHandler handles gift list creation, lookup and reads
type ListHandler struct {
	storage       storage.Store
	publicBaseURL string
}

// NewListHandler creates a new list handler. publicBaseURL, when set, is used
// to build the guest share link for each list.
func NewListHandler(store storage.Store, publicBaseURL string) *ListHandler {
	return &ListHandler{
		storage:       store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// shareURL builds the guest link for a list, or "" when no base URL is set.
func (h *ListHandler) shareURL(listID uuid.UUID) string {
	if h.publicBaseURL == "" {
		return ""
	}
	return h.publicBaseURL + "/lista/" + listID.String()
}

// CreateList handles POST /lists
func (h *ListHandler) CreateList(c *gin.Context) {
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	list, err := h.storage.CreateList(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to create list",
		})
		return
	}

	c.JSON(http.StatusCreated, models.ListCreatedResponse{
		ListID:     list.ID,
		AccessCode: list.AccessCode,
		ShareURL:   h.shareURL(list.ID),
	})
}

// Lookup handles POST /lists/lookup. Credentials are matched exactly, case
// included, unlike the session login which normalizes the email.
func (h *ListHandler) Lookup(c *gin.Context) {
	var req models.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	list, err := h.storage.FindListByCredentials(req.OwnerEmail, req.AccessCode)
	if err != nil {
		if errors.Is(err, storage.ErrListNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "INVALID_CREDENTIALS",
				Message: "Email or access code is incorrect",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to look up list",
		})
		return
	}

	c.JSON(http.StatusOK, models.LookupResponse{ListID: list.ID})
}

// GetList handles GET /lists/:listId. It serves both the guest view and the
// admin view; the whole document is returned either way, credentials
// included, because the access code is a share secret, not a server secret.
func (h *ListHandler) GetList(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_LIST_ID",
			Message: "Invalid list ID format",
		})
		return
	}

	list, err := h.storage.GetList(listID)
	if err != nil {
		if errors.Is(err, storage.ErrListNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    "LIST_NOT_FOUND",
				Message: "The requested gift list was not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to retrieve list",
		})
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		List:         *list,
		ShareURL:     h.shareURL(list.ID),
		PendingCount: list.PendingCount(),
	})
}
