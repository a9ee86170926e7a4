package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/auth"
)

// contextKey é um tipo privado para evitar colisões de chaves no contexto
type contextKey string

const claimsContextKey = contextKey("claims")

// AuthMiddleware valida o token bearer e injeta as claims no contexto da
// requisição. O token é autossuficiente: assinatura e expiração são a
// única verdade, sem consulta ao store — um reinício do servidor não
// invalida tokens vivos.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Obter o header "Authorization"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.respondWithError(w, http.StatusUnauthorized, apperr.ErrMissingToken.Error())
			return
		}

		// 2. Verificar se o formato é "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.respondWithError(w, http.StatusUnauthorized, "Formato do token inválido")
			return
		}

		// 3. Validar o token: presente porém inválido ou expirado é 403
		claims, err := h.tokenService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, apperr.ErrExpiredToken) {
				h.respondWithError(w, http.StatusForbidden, apperr.ErrExpiredToken.Error())
				return
			}
			h.respondWithError(w, http.StatusForbidden, apperr.ErrInvalidToken.Error())
			return
		}

		// 4. Armazenar as claims no contexto da requisição
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFromContext recupera as claims injetadas pelo middleware
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
