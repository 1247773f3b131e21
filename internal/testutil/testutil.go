package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftlist-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	// Create the schema manually for SQLite compatibility; the real schema
	// uses Postgres uuid and jsonb types
	err = db.Exec(`CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		owner_name TEXT NOT NULL,
		owner_email TEXT NOT NULL,
		list_name TEXT NOT NULL,
		access_code TEXT NOT NULL,
		gifts TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME,
		updated_at DATETIME
	)`).Error
	require.NoError(t, err, "Failed to create lists table")

	db.Exec(`CREATE INDEX idx_lists_credentials ON lists(owner_email, access_code)`)

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.NoError(t, err)
	err = sqlDB.Close()
	require.NoError(t, err)
}

// NewTestList creates a list document for tests
func NewTestList(ownerEmail, accessCode string) *models.List {
	return &models.List{
		ID:         uuid.New(),
		OwnerName:  "Test Owner",
		OwnerEmail: ownerEmail,
		ListName:   "Test List",
		AccessCode: accessCode,
		Gifts:      models.Gifts{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// NewTestGift creates a gift in the given status
func NewTestGift(name string, status models.GiftStatus) models.Gift {
	gift := models.Gift{
		ID:     uuid.NewString(),
		Name:   name,
		Price:  10,
		Status: status,
	}
	if status != models.StatusAvailable {
		requester := "Some Guest"
		gift.RequestedBy = &requester
	}
	return gift
}

// MakeJSONRequest creates an HTTP request with JSON body
func MakeJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse parses a JSON response into a target structure
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), target)
	require.NoError(t, err, "Failed to parse JSON response")
}

// StringPtr returns a pointer to a string value
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}
