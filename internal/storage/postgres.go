package storage

import (
	"errors"

	"giftlist-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresStorage implements storage using PostgreSQL with GORM. Each list is
// one row; the gift sequence is a JSON column so every mutation rewrites the
// document as a whole.
type PostgresStorage struct {
	db *gorm.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// CreateList creates a new gift list
func (s *PostgresStorage) CreateList(req models.CreateListRequest) (*models.List, error) {
	list := &models.List{
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		ListName:   req.ListName,
		AccessCode: models.NewAccessCode(),
		Gifts:      models.Gifts{},
	}

	if err := s.db.Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetList retrieves a list document by ID
func (s *PostgresStorage) GetList(id uuid.UUID) (*models.List, error) {
	var list models.List
	if err := s.db.First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindListByCredentials resolves owner email and access code to a list.
// The match is exact and case-sensitive on both values.
func (s *PostgresStorage) FindListByCredentials(ownerEmail, accessCode string) (*models.List, error) {
	var list models.List
	err := s.db.Where("owner_email = ? AND access_code = ?", ownerEmail, accessCode).
		Order("created_at ASC").
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// ReplaceGifts overwrites the gifts column of a list in a single update.
// Last writer wins; there is no version check.
func (s *PostgresStorage) ReplaceGifts(id uuid.UUID, gifts models.Gifts) (*models.List, error) {
	if gifts == nil {
		gifts = models.Gifts{}
	}

	result := s.db.Model(&models.List{}).
		Where("id = ?", id).
		Update("gifts", gifts)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrListNotFound
	}

	return s.GetList(id)
}
