package repository

import (
	"context"

	"docregistry-backend/internal/models"

	"github.com/google/uuid"
)

// UserStore define a interface para operações de usuário
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// DocumentStore define a interface para operações sobre os metadados de
// documentos. CreateDocument atribui o ID ao documento recebido.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id int64) (*models.Document, error)
	GetDocumentsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
}

// Store é uma interface agregada para todas as operações de store
// Facilita a injeção de dependência
type Store interface {
	UserStore
	DocumentStore
}
