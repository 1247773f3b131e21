package storage

import (
	"testing"

	"giftlist-api/internal/models"
	"giftlist-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresStore(t *testing.T) *PostgresStorage {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	return NewPostgresStorage(db)
}

func TestPostgresCreateList(t *testing.T) {
	store := setupPostgresStore(t)

	list, err := store.CreateList(models.CreateListRequest{
		OwnerName:  "Ana",
		OwnerEmail: "ana@x.com",
		ListName:   "Ana's list",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, list.ID)
	assert.Len(t, list.AccessCode, 8)
	assert.NotNil(t, list.Gifts)
	assert.Empty(t, list.Gifts)
}

func TestPostgresGetList(t *testing.T) {
	store := setupPostgresStore(t)

	list, err := store.CreateList(models.CreateListRequest{
		OwnerName: "Ana", OwnerEmail: "ana@x.com", ListName: "L",
	})
	require.NoError(t, err)

	got, err := store.GetList(list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, got.ID)
	assert.Equal(t, "ana@x.com", got.OwnerEmail)

	_, err = store.GetList(uuid.New())
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestPostgresFindListByCredentials(t *testing.T) {
	store := setupPostgresStore(t)

	list, err := store.CreateList(models.CreateListRequest{
		OwnerName: "Jane", OwnerEmail: "jane@example.com", ListName: "L",
	})
	require.NoError(t, err)

	got, err := store.FindListByCredentials("jane@example.com", list.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, list.ID, got.ID)

	_, err = store.FindListByCredentials("jane@example.com", "wrongcode")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestPostgresReplaceGifts(t *testing.T) {
	store := setupPostgresStore(t)

	list, err := store.CreateList(models.CreateListRequest{
		OwnerName: "Ana", OwnerEmail: "ana@x.com", ListName: "L",
	})
	require.NoError(t, err)

	t.Run("round-trips the whole sequence in order", func(t *testing.T) {
		seq := models.Gifts{
			testutil.NewTestGift("First", models.StatusAvailable),
			testutil.NewTestGift("Second", models.StatusPending),
		}

		updated, err := store.ReplaceGifts(list.ID, seq)
		require.NoError(t, err)
		assert.Equal(t, seq, updated.Gifts)

		got, err := store.GetList(list.ID)
		require.NoError(t, err)
		assert.Equal(t, seq, got.Gifts)
	})

	t.Run("nil sequence becomes an empty document", func(t *testing.T) {
		updated, err := store.ReplaceGifts(list.ID, nil)
		require.NoError(t, err)
		assert.NotNil(t, updated.Gifts)
		assert.Empty(t, updated.Gifts)
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		_, err := store.ReplaceGifts(uuid.New(), models.Gifts{})
		assert.ErrorIs(t, err, ErrListNotFound)
	})
}
