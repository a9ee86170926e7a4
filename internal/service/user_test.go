package service

import (
	"context"
	"testing"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/models"
	"docregistry-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(repository.NewInMemoryStore())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, registered.Role)
	require.NotEmpty(t, registered.PasswordHash)
	require.NotEqual(t, "Secret123!", registered.PasswordHash)

	// O ID é estável entre autenticações
	first, err := svc.Authenticate(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.Equal(t, registered.ID, first.ID)

	second, err := svc.Authenticate(ctx, "alice", "Secret123!")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestAuthenticate_GenericFailure(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	// Senha errada e usuário inexistente produzem o mesmo erro:
	// resistência à enumeração de usuários
	_, errWrongPass := svc.Authenticate(ctx, "alice", "errada")
	require.ErrorIs(t, errWrongPass, apperr.ErrInvalidCredentials)

	_, errGhost := svc.Authenticate(ctx, "fantasma", "x")
	require.ErrorIs(t, errGhost, apperr.ErrInvalidCredentials)

	require.Equal(t, errWrongPass.Error(), errGhost.Error())
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "OutraSenha1!")
	require.ErrorIs(t, err, apperr.ErrDuplicateIdentity)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "Secret123!")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Register(ctx, "alice", "")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx))
	require.NoError(t, svc.EnsureAdmin(ctx))

	admin, err := svc.Authenticate(ctx, "admin", "Admin123!")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
}
