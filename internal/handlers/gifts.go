package handlers

import (
	"errors"
	"net/http"

	"giftlist-api/internal/gifts"
	"giftlist-api/internal/models"
	"giftlist-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GiftHandler handles gift mutations. Every operation is one
// read-modify-write cycle over the list document: load the list, transform
// the gift sequence in memory, write the whole sequence back.
type GiftHandler struct {
	storage storage.Store
}

// NewGiftHandler creates a new gift handler
func NewGiftHandler(store storage.Store) *GiftHandler {
	return &GiftHandler{storage: store}
}

// loadList resolves the :listId parameter and fetches the document. It writes
// the error response itself; callers must return when ok is false.
func (h *GiftHandler) loadList(c *gin.Context) (*models.List, bool) {
	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_LIST_ID",
			Message: "Invalid list ID format",
		})
		return nil, false
	}

	list, err := h.storage.GetList(listID)
	if err != nil {
		if errors.Is(err, storage.ErrListNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    "LIST_NOT_FOUND",
				Message: "The requested gift list was not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to retrieve list",
		})
		return nil, false
	}

	return list, true
}

// replaceGifts persists the transformed sequence and responds with the
// updated document.
func (h *GiftHandler) replaceGifts(c *gin.Context, listID uuid.UUID, seq models.Gifts, status int) {
	list, err := h.storage.ReplaceGifts(listID, seq)
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
			Message: "Failed to save gift list",
		})
		return
	}

	c.JSON(status, models.ListResponse{
		List:         *list,
		PendingCount: list.PendingCount(),
	})
}

// respondTransitionError maps state machine errors to HTTP responses.
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gifts.ErrGiftNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    "GIFT_NOT_FOUND",
			Message: "The requested gift was not found in this list",
		})
	case errors.Is(err, gifts.ErrGiftUnavailable):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Code:    "GIFT_UNAVAILABLE",
			Message: "This gift has already been requested or assigned",
		})
	case errors.Is(err, gifts.ErrGiftNotPending):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Code:    "GIFT_NOT_PENDING",
			Message: "This gift has no pending request to decide on",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to update gift",
		})
	}
}

// CreateGift handles POST /lists/:listId/gifts
func (h *GiftHandler) CreateGift(c *gin.Context) {
	var req models.CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, _ := gifts.Create(list.Gifts, req)
	h.replaceGifts(c, list.ID, updated, http.StatusCreated)
}

// UpdateGift handles PUT /lists/:listId/gifts/:giftId
func (h *GiftHandler) UpdateGift(c *gin.Context) {
	var req models.UpdateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, err := gifts.Edit(list.Gifts, c.Param("giftId"), req)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	h.replaceGifts(c, list.ID, updated, http.StatusOK)
}

// DeleteGift handles DELETE /lists/:listId/gifts/:giftId
func (h *GiftHandler) DeleteGift(c *gin.Context) {
	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, err := gifts.Delete(list.Gifts, c.Param("giftId"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	h.replaceGifts(c, list.ID, updated, http.StatusOK)
}

// ApproveGift handles POST /lists/:listId/gifts/:giftId/approve
func (h *GiftHandler) ApproveGift(c *gin.Context) {
	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, err := gifts.Approve(list.Gifts, c.Param("giftId"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	h.replaceGifts(c, list.ID, updated, http.StatusOK)
}

// RejectGift handles POST /lists/:listId/gifts/:giftId/reject
func (h *GiftHandler) RejectGift(c *gin.Context) {
	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, err := gifts.Reject(list.Gifts, c.Param("giftId"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	h.replaceGifts(c, list.ID, updated, http.StatusOK)
}

// RequestGift handles POST /lists/:listId/gifts/:giftId/request. This is the
// only guest-facing mutation; it has no session gate.
func (h *GiftHandler) RequestGift(c *gin.Context) {
	var req models.RequestGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	list, ok := h.loadList(c)
	if !ok {
		return
	}

	updated, err := gifts.Request(list.Gifts, c.Param("giftId"), req.RequestedBy)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	h.replaceGifts(c, list.ID, updated, http.StatusOK)
}
