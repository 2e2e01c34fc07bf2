package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-ledger/internal/domain/session"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/repository/memory"
)

func apartmentDoc(name string) *society.Apartment {
	return &society.Apartment{
		ID:                 society.NewID(),
		Name:               name,
		SecretaryPhone:     "9000000000",
		DefaultMaintenance: 1000,
		CreatedAt:          time.Now().UTC(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	doc := apartmentDoc("Green Heights")
	doc.Residents = []society.Resident{{
		ID: society.NewID(), Name: "Asha", Phone: "9000000000",
		Flat: society.SecretaryFlat, Role: society.RoleSecretary,
	}}
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, loaded.Name)
	require.Len(t, loaded.Residents, 1)
	assert.Equal(t, "Asha", loaded.Residents[0].Name)
}

func TestStoreGetMissing(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, society.ErrApartmentNotFound)
}

func TestStoreRevisionIncrements(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	doc := apartmentDoc("Green Heights")
	require.NoError(t, store.Save(ctx, doc))
	assert.Equal(t, int64(1), doc.Revision)

	require.NoError(t, store.Save(ctx, doc))
	assert.Equal(t, int64(2), doc.Revision)

	loaded, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Revision)
}

func TestStoreRejectsStaleSave(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	doc := apartmentDoc("Green Heights")
	require.NoError(t, store.Save(ctx, doc))

	first, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	second, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)

	first.Name = "Renamed by first"
	require.NoError(t, store.Save(ctx, first))

	second.Name = "Renamed by second"
	require.ErrorIs(t, store.Save(ctx, second), society.ErrStaleDocument)

	loaded, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed by first", loaded.Name)
}

func TestStoreListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		require.NoError(t, store.Save(ctx, apartmentDoc(name)))
	}

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, name := range names {
		assert.Equal(t, name, listed[i].Name)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	doc := apartmentDoc("Green Heights")
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	loaded.Name = "Mutated"

	again, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Heights", again.Name)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	sess := session.New("user-1", "apartment-1")
	require.NoError(t, store.Create(ctx, sess))

	loaded, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.UserID)
	assert.Equal(t, "apartment-1", loaded.ApartmentID)

	require.NoError(t, store.Delete(ctx, sess.Token))
	_, err = store.Get(ctx, sess.Token)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}
