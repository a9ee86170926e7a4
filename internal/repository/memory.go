package repository

import (
	"context"
	"sync"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/models"

	"github.com/google/uuid"
)

// InMemoryStore é uma implementação em-memória da interface Store.
// Toda mutação é uma seção crítica sob o mutex; leituras concorrentes
// compartilham o lock de leitura. O estado vive apenas enquanto o
// processo vive.
type InMemoryStore struct {
	mu              sync.RWMutex
	usersByID       map[uuid.UUID]*models.User
	usersByUsername map[string]*models.User
	documentsByID   map[int64]*models.Document
	documentOrder   []int64 // preserva a ordem de inserção para a listagem
}

// NewInMemoryStore cria uma nova instância do store em memória
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		usersByID:       make(map[uuid.UUID]*models.User),
		usersByUsername: make(map[string]*models.User),
		documentsByID:   make(map[int64]*models.Document),
	}
}

// --- UserStore ---

func (s *InMemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return apperr.ErrDuplicateIdentity
	}

	s.usersByID[user.ID] = user
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *InMemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByUsername[username]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func (s *InMemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByID[id]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// --- DocumentStore ---

// CreateDocument registra os metadados e atribui o ID: os milissegundos
// da criação, incrementados sob o lock quando dois uploads caem no mesmo
// milissegundo.
func (s *InMemoryStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	for {
		if _, taken := s.documentsByID[id]; !taken {
			break
		}
		id++
	}

	doc.ID = id
	s.documentsByID[id] = doc
	s.documentOrder = append(s.documentOrder, id)
	return nil
}

func (s *InMemoryStore) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.documentsByID[id]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	return doc, nil
}

func (s *InMemoryStore) GetDocumentsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Retorna lista vazia em vez de nil, para consistência
	docs := make([]*models.Document, 0)
	for _, id := range s.documentOrder {
		if doc := s.documentsByID[id]; doc != nil && doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *InMemoryStore) DeleteDocument(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documentsByID[id]; !exists {
		return apperr.ErrNotFound
	}

	delete(s.documentsByID, id)
	for i, orderedID := range s.documentOrder {
		if orderedID == id {
			s.documentOrder = append(s.documentOrder[:i], s.documentOrder[i+1:]...)
			break
		}
	}
	return nil
}
