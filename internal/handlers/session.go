package handlers

import (
	"errors"
	"net/http"

	"giftlist-api/internal/models"
	"giftlist-api/internal/session"
	"giftlist-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles admin session login, status and logout for a list
type SessionHandler struct {
	storage storage.Store
	guard   session.Guard
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store storage.Store, guard session.Guard) *SessionHandler {
	return &SessionHandler{storage: store, guard: guard}
}

// Login handles POST /lists/:listId/session
func (h *SessionHandler) Login(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_LIST_ID",
			Message: "Invalid list ID format",
		})
		return
	}

	var req models.SessionLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
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

	sess, err := h.guard.Authenticate(listID, req.OwnerEmail, req.AccessCode, list)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Email or access code is incorrect",
		})
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt(),
	})
}

// Status handles GET /lists/:listId/session
func (h *SessionHandler) Status(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_LIST_ID",
			Message: "Invalid list ID format",
		})
		return
	}

	c.JSON(http.StatusOK, models.SessionStatusResponse{
		Authenticated: h.guard.CheckSession(listID),
	})
}

// Logout handles DELETE /lists/:listId/session
func (h *SessionHandler) Logout(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_LIST_ID",
			Message: "Invalid list ID format",
		})
		return
	}

	h.guard.Logout(listID)
	c.Status(http.StatusNoContent)
}
