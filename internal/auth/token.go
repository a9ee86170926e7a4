package auth

import (
	"errors"
	"fmt"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims são as afirmações embutidas no token de sessão. Além das claims
// registradas (sub, iat, exp), carregam o nome de usuário e o papel
// necessários para atribuição de identidade nas operações de documentos.
// O token é legível pelo cliente; a garantia é de integridade, não de sigilo.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserID devolve o identificador do usuário embutido no token.
// O 'sub' já foi validado como UUID em ValidateToken.
func (c *Claims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}

// TokenService lida com emissão e verificação de tokens JWT
type TokenService struct {
	jwtSecret []byte
	validity  time.Duration
}

// NewTokenService cria um novo serviço de token com a validade fixa
// aplicada a cada token emitido
func NewTokenService(secret string, validity time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("segredo JWT não pode ser vazio")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("validade do token deve ser positiva")
	}
	return &TokenService{
		jwtSecret: []byte(secret),
		validity:  validity,
	}, nil
}

// NewToken cria um novo token JWT assinado para um usuário, com
// expiração absoluta a partir da emissão
func (s *TokenService) NewToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifica assinatura e expiração de um token e devolve as
// claims. Não há consulta a estado do servidor: o token é a única verdade.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Verifica o método de assinatura
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrExpiredToken
		}
		return nil, apperr.ErrInvalidToken
	}

	if !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, apperr.ErrInvalidToken
	}

	return claims, nil
}
