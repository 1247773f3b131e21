// Package gifts implements the gift status lifecycle as pure transformations
// of a list's gift sequence. Nothing here touches storage: callers read the
// whole document, transform it, and persist the resulting sequence as a unit.
package gifts

import (
	"errors"
	"strconv"
	"strings"

	"giftlist-api/internal/models"

	"github.com/google/uuid"
)

var (
	ErrGiftNotFound    = errors.New("gift not found in list")
	ErrGiftUnavailable = errors.New("gift is not available")
	ErrGiftNotPending  = errors.New("gift has no pending request")
)

// ParsePrice converts a raw form value into a price. Absent or unparseable
// values become 0; negative values are clamped to 0.
func ParsePrice(raw string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// clone returns a copy of the sequence so callers never see their input
// mutated.
func clone(seq models.Gifts) models.Gifts {
	out := make(models.Gifts, len(seq))
	copy(out, seq)
	return out
}

// find returns the index of the gift with the given id, or -1.
func find(seq models.Gifts, giftID string) int {
	for i := range seq {
		if seq[i].ID == giftID {
			return i
		}
	}
	return -1
}

// Create appends a new gift to the end of the sequence. The gift starts
// available, with no requester and no owner decision, under a fresh id that
// is unique within the list.
func Create(seq models.Gifts, req models.CreateGiftRequest) (models.Gifts, models.Gift) {
	gift := models.Gift{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Image:       req.Image,
		Price:       ParsePrice(req.Price),
		Status:      models.StatusAvailable,
	}

	out := clone(seq)
	out = append(out, gift)
	return out, gift
}

// Request marks an available gift as pending for the named requester.
// Requesting a gift that is already pending or assigned fails and leaves the
// sequence unchanged. Requester names are not validated here; blank names are
// the form layer's problem.
func Request(seq models.Gifts, giftID, requestedBy string) (models.Gifts, error) {
	i := find(seq, giftID)
	if i < 0 {
		return seq, ErrGiftNotFound
	}
	if seq[i].Status != models.StatusAvailable {
		return seq, ErrGiftUnavailable
	}

	out := clone(seq)
	out[i].Status = models.StatusPending
	out[i].RequestedBy = &requestedBy
	return out, nil
}

// Approve assigns a pending gift to its requester. The requester name is
// preserved.
func Approve(seq models.Gifts, giftID string) (models.Gifts, error) {
	i := find(seq, giftID)
	if i < 0 {
		return seq, ErrGiftNotFound
	}
	if seq[i].Status != models.StatusPending {
		return seq, ErrGiftNotPending
	}

	approved := true
	out := clone(seq)
	out[i].Status = models.StatusAssigned
	out[i].ApprovedByOwner = &approved
	return out, nil
}

// Reject returns a pending gift to the pool, clearing its requester.
func Reject(seq models.Gifts, giftID string) (models.Gifts, error) {
	i := find(seq, giftID)
	if i < 0 {
		return seq, ErrGiftNotFound
	}
	if seq[i].Status != models.StatusPending {
		return seq, ErrGiftNotPending
	}

	rejected := false
	out := clone(seq)
	out[i].Status = models.StatusAvailable
	out[i].ApprovedByOwner = &rejected
	out[i].RequestedBy = nil
	return out, nil
}

// Edit replaces the provided display fields of a gift in place. Identity,
// status, requester and approval are never altered.
func Edit(seq models.Gifts, giftID string, req models.UpdateGiftRequest) (models.Gifts, error) {
	i := find(seq, giftID)
	if i < 0 {
		return seq, ErrGiftNotFound
	}

	out := clone(seq)
	if req.Name != nil {
		out[i].Name = *req.Name
	}
	if req.Description != nil {
		out[i].Description = *req.Description
	}
	if req.URL != nil {
		out[i].URL = *req.URL
	}
	if req.Image != nil {
		out[i].Image = *req.Image
	}
	if req.Price != nil {
		out[i].Price = ParsePrice(*req.Price)
	}
	return out, nil
}

// Delete removes exactly the gift with the given id. No tombstone is kept.
func Delete(seq models.Gifts, giftID string) (models.Gifts, error) {
	i := find(seq, giftID)
	if i < 0 {
		return seq, ErrGiftNotFound
	}

	out := make(models.Gifts, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	out = append(out, seq[i+1:]...)
	return out, nil
}
