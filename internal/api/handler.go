package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/auth"
	"docregistry-backend/internal/service"
	"docregistry-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler gerencia as dependências para os handlers HTTP
type Handler struct {
	userService     *service.UserService
	documentService *service.DocumentService
	tokenService    *auth.TokenService
	uploadsDir      string // apenas para o health check
	validate        *validator.Validate
}

// NewHandler cria uma nova instância do Handler
func NewHandler(
	userSvc *service.UserService,
	documentSvc *service.DocumentService,
	tokenSvc *auth.TokenService,
	uploadsDir string,
) *Handler {
	return &Handler{
		userService:     userSvc,
		documentService: documentSvc,
		tokenService:    tokenSvc,
		uploadsDir:      uploadsDir,
		validate:        validator.New(),
	}
}

// === Funções Auxiliares de Resposta ===

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Erro ao serializar JSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"Erro interno ao serializar resposta"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// translateError mapeia os erros do domínio para status + mensagem.
// Erros inesperados nunca vazam detalhe interno ao cliente.
func (h *Handler) translateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrDuplicateIdentity),
		errors.Is(err, apperr.ErrPayloadTooLarge),
		errors.Is(err, apperr.ErrUnsupportedType):
		h.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		h.respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		h.respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, "Documento não encontrado")
	case errors.Is(err, apperr.ErrArtifactMissing):
		// Anomalia interna já registrada com detalhe no serviço
		h.respondWithError(w, http.StatusNotFound, "Arquivo não encontrado no servidor")
	default:
		log.Printf("Erro interno não mapeado: %v", err)
		h.respondWithError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// === Handlers ===

// handleHealth (GET /api/health)
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, statErr := os.Stat(h.uploadsDir)
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"uploadsDir": statErr == nil,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// handleRegister (POST /api/register)
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	if _, err := h.userService.Register(r.Context(), req.Username, req.Password); err != nil {
		h.translateError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Registro bem-sucedido",
	})
}

// handleLogin (POST /api/login)
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Preencha todos os campos")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.translateError(w, err)
		return
	}

	token, err := h.tokenService.NewToken(user)
	if err != nil {
		log.Printf("Erro ao gerar token JWT: %v", err)
		h.respondWithError(w, http.StatusInternalServerError, "Erro interno ao gerar token")
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// handleUpload (POST /api/upload): multipart com um único campo "file"
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	// Limita o corpo ao tamanho máximo de artefato mais a sobrecarga do
	// encoding multipart; acima disso o serviço nem chega a ser chamado
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.translateError(w, apperr.ErrPayloadTooLarge)
			return
		}
		h.respondWithError(w, http.StatusBadRequest, "Arquivo não foi enviado")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Arquivo não foi enviado")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.translateError(w, apperr.ErrPayloadTooLarge)
			return
		}
		log.Printf("Erro ao ler arquivo enviado: %v", err)
		h.respondWithError(w, http.StatusBadRequest, "Falha ao ler o arquivo enviado")
		return
	}

	doc, err := h.documentService.Upload(r.Context(), claims, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.translateError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Arquivo enviado com sucesso",
		"documentId": doc.ID,
		"fileName":   doc.Name,
		"fileSize":   doc.Size,
	})
}

// handleListDocuments (GET /api/documents)
func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	documents, err := h.documentService.List(r.Context(), claims)
	if err != nil {
		h.translateError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"documents": documents,
	})
}

// handleDownload (GET /api/download/{id}): responde o binário como
// attachment com o nome exibido original
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.translateError(w, apperr.ErrNotFound)
		return
	}

	data, name, err := h.documentService.Download(r.Context(), claims, id)
	if err != nil {
		h.translateError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleDeleteDocument (DELETE /api/document/{id})
func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.translateError(w, apperr.ErrNotFound)
		return
	}

	if err := h.documentService.Delete(r.Context(), claims, id); err != nil {
		h.translateError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Documento removido",
	})
}
