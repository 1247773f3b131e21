package storage

import (
	"errors"
	"sync"
	"time"

	"giftlist-api/internal/models"

	"github.com/google/uuid"
)

var ErrListNotFound = errors.New("gift list not found")

// Storage provides in-memory storage for gift lists
type Storage struct {
	mu    sync.RWMutex
	lists map[uuid.UUID]*models.List // maps list ID to list document
}

// NewStorage creates a new in-memory storage instance
func NewStorage() *Storage {
	return &Storage{
		lists: make(map[uuid.UUID]*models.List),
	}
}

// CreateList creates a new gift list with a fresh access code
func (s *Storage) CreateList(req models.CreateListRequest) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	list := &models.List{
		ID:         uuid.New(),
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		ListName:   req.ListName,
		AccessCode: models.NewAccessCode(),
		Gifts:      models.Gifts{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.lists[list.ID] = list
	return copyList(list), nil
}

// GetList retrieves a list document by ID
func (s *Storage) GetList(id uuid.UUID) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, exists := s.lists[id]
	if !exists {
		return nil, ErrListNotFound
	}
	return copyList(list), nil
}

// FindListByCredentials resolves owner email and access code to a list.
// Both values are matched exactly; the first match wins.
func (s *Storage) FindListByCredentials(ownerEmail, accessCode string) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range s.lists {
		if list.OwnerEmail == ownerEmail && list.AccessCode == accessCode {
			return copyList(list), nil
		}
	}
	return nil, ErrListNotFound
}

// ReplaceGifts overwrites the entire gift sequence of a list. Last writer
// wins; there is no version check.
func (s *Storage) ReplaceGifts(id uuid.UUID, gifts models.Gifts) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, exists := s.lists[id]
	if !exists {
		return nil, ErrListNotFound
	}

	list.Gifts = copyGifts(gifts)
	list.UpdatedAt = time.Now()
	return copyList(list), nil
}

// copyList returns a deep copy so callers never share the stored document.
func copyList(list *models.List) *models.List {
	listCopy := *list
	listCopy.Gifts = copyGifts(list.Gifts)
	return &listCopy
}

func copyGifts(gifts models.Gifts) models.Gifts {
	out := make(models.Gifts, len(gifts))
	copy(out, gifts)
	return out
}
