// Package apperr define os erros sentinela compartilhados entre as camadas.
// Os chamadores devem usar errors.Is para comparação; a camada de API
// traduz cada tipo para status HTTP e mensagem ao cliente.
package apperr

import "errors"

var (
	// Entrada e registro
	ErrInvalidInput      = errors.New("dados de entrada inválidos")
	ErrDuplicateIdentity = errors.New("usuário já existe")

	// Autenticação
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrMissingToken       = errors.New("token de autorização não fornecido")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")

	// Autorização e recursos
	ErrForbidden = errors.New("acesso negado")
	ErrNotFound  = errors.New("não encontrado")

	// Armazenamento de artefatos
	ErrArtifactMissing = errors.New("artefato ausente no armazenamento")
	ErrPayloadTooLarge = errors.New("arquivo excede o tamanho máximo permitido")
	ErrUnsupportedType = errors.New("tipo de arquivo não permitido")
)
