package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newUser(username string) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  username,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
}

func newDoc(owner *models.User, name string) *models.Document {
	return &models.Document{
		Name:          name,
		StoredName:    "stored-" + name,
		Size:          10,
		ContentType:   "text/plain",
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		UploadedAt:    time.Now(),
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newUser("alice")))
	err := store.CreateUser(ctx, newUser("alice"))
	require.ErrorIs(t, err, apperr.ErrDuplicateIdentity)
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.GetUserByUsername(ctx, "fantasma")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = store.GetUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetUser_Lookups(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()
	alice := newUser("alice")
	require.NoError(t, store.CreateUser(ctx, alice))

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byName.ID)

	byID, err := store.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestCreateDocument_UniqueIDs(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()
	owner := newUser("alice")

	// Vários documentos no mesmo milissegundo não podem colidir
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		doc := newDoc(owner, "a.txt")
		require.NoError(t, store.CreateDocument(ctx, doc))
		require.NotZero(t, doc.ID)
		require.False(t, seen[doc.ID], "ID duplicado: %d", doc.ID)
		seen[doc.ID] = true
	}
}

func TestCreateDocument_ConcurrentUniqueIDs(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()
	owner := newUser("alice")

	const n = 50
	docs := make([]*models.Document, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := newDoc(owner, "a.txt")
			if err := store.CreateDocument(ctx, doc); err != nil {
				t.Errorf("CreateDocument: %v", err)
				return
			}
			docs[i] = doc
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, doc := range docs {
		require.NotNil(t, doc)
		require.False(t, seen[doc.ID], "ID duplicado: %d", doc.ID)
		seen[doc.ID] = true
	}
}

func TestGetDocumentsByOwner_FilterAndOrder(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()
	alice := newUser("alice")
	bruno := newUser("bruno")

	first := newDoc(alice, "primeiro.txt")
	second := newDoc(bruno, "alheio.txt")
	third := newDoc(alice, "segundo.txt")
	require.NoError(t, store.CreateDocument(ctx, first))
	require.NoError(t, store.CreateDocument(ctx, second))
	require.NoError(t, store.CreateDocument(ctx, third))

	docs, err := store.GetDocumentsByOwnerID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "primeiro.txt", docs[0].Name)
	require.Equal(t, "segundo.txt", docs[1].Name)

	empty, err := store.GetDocumentsByOwnerID(ctx, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestDeleteDocument(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()
	owner := newUser("alice")

	doc := newDoc(owner, "a.txt")
	require.NoError(t, store.CreateDocument(ctx, doc))

	require.NoError(t, store.DeleteDocument(ctx, doc.ID))

	_, err := store.GetDocumentByID(ctx, doc.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	// Segunda remoção do mesmo ID é NotFound, não corrupção
	err = store.DeleteDocument(ctx, doc.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	docs, err := store.GetDocumentsByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, docs)
}
