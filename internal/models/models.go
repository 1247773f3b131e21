package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GiftStatus represents the lifecycle state of a gift
type GiftStatus string

const (
	StatusAvailable GiftStatus = "available"
	StatusPending   GiftStatus = "pending"
	StatusAssigned  GiftStatus = "assigned"
)

// Gift represents one wishable item inside a list document. Gifts are not a
// table of their own: the whole sequence lives inside the List document and
// is read and rewritten as a unit on every mutation.
type Gift struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	URL             string     `json:"url,omitempty"`
	Image           string     `json:"image,omitempty"`
	Price           float64    `json:"price"`
	Status          GiftStatus `json:"status"`
	RequestedBy     *string    `json:"requestedBy"`
	ApprovedByOwner *bool      `json:"approvedByOwner"`
}

// Gifts is the ordered gift sequence of a list. Insertion order is display
// order.
type Gifts []Gift

// List represents a gift list owned by one person. The access code paired
// with the owner email is the only admin credential; both are stored in the
// document itself.
type List struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerName  string    `gorm:"not null;size:100" json:"ownerName"`
	OwnerEmail string    `gorm:"not null;size:255;index:idx_lists_credentials" json:"ownerEmail"`
	ListName   string    `gorm:"not null;size:100" json:"listName"`
	AccessCode string    `gorm:"not null;size:16;index:idx_lists_credentials" json:"accessCode"`
	Gifts      Gifts     `gorm:"type:jsonb;serializer:json" json:"gifts"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate hook to generate UUID if not set
func (l *List) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// PendingCount returns how many gifts have an unanswered request.
func (l *List) PendingCount() int {
	count := 0
	for _, g := range l.Gifts {
		if g.Status == StatusPending {
			count++
		}
	}
	return count
}

// NewAccessCode generates a fresh 8-character access code from a v4 UUID.
// Collisions are treated as negligible and are not checked.
func NewAccessCode() string {
	return uuid.NewString()[:8]
}

// CreateListRequest represents the request to create a new gift list
type CreateListRequest struct {
	OwnerName  string `json:"ownerName" binding:"required,min=1,max=100"`
	OwnerEmail string `json:"ownerEmail" binding:"required,email,max=255"`
	ListName   string `json:"listName" binding:"required,min=1,max=100"`
}

// LookupRequest represents an owner resolving their list id by credentials
type LookupRequest struct {
	OwnerEmail string `json:"ownerEmail" binding:"required,email"`
	AccessCode string `json:"accessCode" binding:"required"`
}

// LookupResponse carries the resolved list id
type LookupResponse struct {
	ListID uuid.UUID `json:"listId"`
}

// SessionLoginRequest represents an admin session login
type SessionLoginRequest struct {
	OwnerEmail string `json:"ownerEmail" binding:"required"`
	AccessCode string `json:"accessCode" binding:"required"`
}

// SessionResponse is returned after a successful admin login
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStatusResponse reports whether an admin session is active
type SessionStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// CreateGiftRequest represents the request to add a gift to a list.
// Price arrives as the raw form value; anything unparseable becomes 0.
type CreateGiftRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description,omitempty" binding:"max=1000"`
	URL         string `json:"url,omitempty" binding:"omitempty,url"`
	Image       string `json:"image,omitempty" binding:"omitempty,url"`
	Price       string `json:"price,omitempty"`
}

// UpdateGiftRequest represents the request to edit a gift's display fields.
// Status, requester and approval are never editable through this request.
type UpdateGiftRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	URL         *string `json:"url,omitempty" binding:"omitempty,url"`
	Image       *string `json:"image,omitempty" binding:"omitempty,url"`
	Price       *string `json:"price,omitempty"`
}

// RequestGiftRequest represents a guest asking for a gift
type RequestGiftRequest struct {
	RequestedBy string `json:"requestedBy" binding:"required,min=1,max=100"`
}

// ListResponse is the list document plus derived display fields
type ListResponse struct {
	List
	ShareURL     string `json:"shareUrl,omitempty"`
	PendingCount int    `json:"pendingRequests"`
}

// ListCreatedResponse is returned after creating a list
type ListCreatedResponse struct {
	ListID     uuid.UUID `json:"listId"`
	AccessCode string    `json:"accessCode"`
	ShareURL   string    `json:"shareUrl,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
