package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/models"
	"docregistry-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credenciais do administrador criado no primeiro arranque.
// Conveniência de setup, não um padrão de produção.
const (
	bootstrapAdminUsername = "admin"
	bootstrapAdminPassword = "Admin123!"
)

// UserService lida com a lógica de negócios de usuários
type UserService struct {
	store repository.UserStore
}

// NewUserService cria um novo serviço de usuário
func NewUserService(store repository.UserStore) *UserService {
	return &UserService{
		store: store,
	}
}

// Register cria um novo usuário com papel 'user'
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.ErrInvalidInput
	}

	// Gerar hash da senha (nunca armazene senha em texto plano)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Erro ao gerar hash bcrypt: %v", err)
		return nil, fmt.Errorf("erro interno ao processar senha")
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	// A checagem de duplicidade acontece dentro do store, sob o lock
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrDuplicateIdentity) {
			return nil, err
		}
		log.Printf("Erro ao salvar usuário no store: %v", err)
		return nil, fmt.Errorf("erro interno ao salvar usuário")
	}

	return user, nil
}

// Authenticate verifica as credenciais e devolve o usuário. Usuário
// inexistente e senha incorreta produzem o mesmo erro genérico para
// evitar enumeração de usuários; a comparação do hash é delegada ao
// bcrypt, que é resistente a ataques de temporização.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.ErrInvalidInput
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return user, nil
}

// EnsureAdmin cria o administrador padrão se ainda não existir.
// Idempotente; chamado no arranque do processo.
func (s *UserService) EnsureAdmin(ctx context.Context) error {
	if _, err := s.store.GetUserByUsername(ctx, bootstrapAdminUsername); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash do administrador: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New(),
		Username:     bootstrapAdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperr.ErrDuplicateIdentity) {
			return nil
		}
		return err
	}

	log.Println("Administrador padrão criado")
	return nil
}
