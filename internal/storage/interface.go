package storage

import (
	"giftlist-api/internal/models"

	"github.com/google/uuid"
)

// Store defines the interface for list document storage. The List is the unit
// of storage: its gift sequence is read whole and rewritten whole.
//
// ReplaceGifts is deliberately last-writer-wins. Two overlapping
// read-modify-write cycles can drop one writer's change; closing that hazard
// (compare-and-swap, per-gift updates) is a policy change local to this
// interface's implementations.
type Store interface {
	// CreateList persists a new list with a fresh access code and an empty
	// gift sequence, returning it with its assigned id.
	CreateList(req models.CreateListRequest) (*models.List, error)

	// GetList retrieves a list document by id.
	GetList(id uuid.UUID) (*models.List, error)

	// FindListByCredentials resolves owner credentials to a list. Both email
	// and access code are matched exactly, case included. The first match is
	// returned when more than one exists.
	FindListByCredentials(ownerEmail, accessCode string) (*models.List, error)

	// ReplaceGifts overwrites the list's entire gift sequence and returns the
	// updated document.
	ReplaceGifts(id uuid.UUID, gifts models.Gifts) (*models.List, error)
}
