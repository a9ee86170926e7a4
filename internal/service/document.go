package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"docregistry-backend/internal/apperr"
	"docregistry-backend/internal/auth"
	"docregistry-backend/internal/models"
	"docregistry-backend/internal/repository"
	"docregistry-backend/internal/storage"
)

// DocumentService lida com a lógica de negócios do registro de documentos:
// persistência dos bytes via BlobStore e dos metadados via DocumentStore,
// com a checagem de dono em toda operação sobre um documento existente.
type DocumentService struct {
	store repository.Store // Precisa de UserStore e DocumentStore
	blobs storage.BlobStore
}

// NewDocumentService cria um novo serviço de documentos
func NewDocumentService(store repository.Store, blobs storage.BlobStore) *DocumentService {
	return &DocumentService{
		store: store,
		blobs: blobs,
	}
}

// Upload valida, persiste os bytes e então registra os metadados, nessa
// ordem. O dono vem exclusivamente das claims verificadas, nunca de
// campos enviados pelo cliente.
func (s *DocumentService) Upload(ctx context.Context, claims *auth.Claims, data []byte, name, contentType string) (*models.Document, error) {
	if err := storage.CheckConstraints(int64(len(data)), contentType); err != nil {
		return nil, err
	}

	// Todo documento tem de referenciar um usuário existente na criação.
	// Um token ainda válido pode carregar uma identidade que já não
	// existe (reinício do servidor); rejeitar antes de gravar qualquer byte.
	if _, err := s.store.GetUserByID(ctx, claims.UserID()); err != nil {
		log.Printf("Upload recusado: token referencia usuário inexistente %s", claims.UserID())
		return nil, apperr.ErrForbidden
	}

	result, err := s.blobs.Write(ctx, data, name)
	if err != nil {
		log.Printf("Erro ao gravar artefato: %v", err)
		return nil, fmt.Errorf("erro interno ao gravar arquivo")
	}

	doc := &models.Document{
		Name:          name,
		StoredName:    result.StoredName,
		Size:          result.Size,
		ContentType:   contentType,
		Digest:        result.Digest,
		OwnerID:       claims.UserID(),
		OwnerUsername: claims.Username,
		UploadedAt:    time.Now(),
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		log.Printf("Erro ao registrar documento: %v", err)
		return nil, fmt.Errorf("erro interno ao registrar documento")
	}

	return doc, nil
}

// List devolve apenas os documentos do chamador, na ordem de inserção,
// cada um com o tamanho formatado de forma legível
func (s *DocumentService) List(ctx context.Context, claims *auth.Claims) ([]models.DocumentSummary, error) {
	docs, err := s.store.GetDocumentsByOwnerID(ctx, claims.UserID())
	if err != nil {
		log.Printf("Erro ao buscar documentos no store: %v", err)
		return nil, fmt.Errorf("erro interno ao listar documentos")
	}

	summaries := make([]models.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, models.DocumentSummary{
			ID:            doc.ID,
			Name:          doc.Name,
			Size:          doc.Size,
			ContentType:   doc.ContentType,
			UploadedAt:    doc.UploadedAt,
			SizeFormatted: FormatFileSize(doc.Size),
		})
	}
	return summaries, nil
}

// findOwned localiza o documento e aplica a checagem de dono.
// A autorização precede qualquer acesso aos bytes.
func (s *DocumentService) findOwned(ctx context.Context, claims *auth.Claims, id int64) (*models.Document, error) {
	doc, err := s.store.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	if doc.OwnerID != claims.UserID() {
		return nil, apperr.ErrForbidden
	}
	return doc, nil
}

// Download devolve os bytes do documento e o nome exibido original
func (s *DocumentService) Download(ctx context.Context, claims *auth.Claims, id int64) ([]byte, string, error) {
	doc, err := s.findOwned(ctx, claims, id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.blobs.Read(ctx, doc.StoredName)
	if err != nil {
		if errors.Is(err, apperr.ErrArtifactMissing) {
			// Deriva entre metadados e armazenamento: anomalia do servidor,
			// registrada aqui com detalhe antes da resposta genérica
			log.Printf("Erro: documento %d referencia artefato ausente '%s'", doc.ID, doc.StoredName)
			return nil, "", apperr.ErrArtifactMissing
		}
		log.Printf("Erro ao ler artefato '%s': %v", doc.StoredName, err)
		return nil, "", fmt.Errorf("erro interno ao ler arquivo")
	}

	return data, doc.Name, nil
}

// Delete remove os bytes primeiro (ausência ignorada) e então os
// metadados, incondicionalmente. Nenhum estado parcial fica observável:
// as duas etapas acontecem antes do retorno.
func (s *DocumentService) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	doc, err := s.findOwned(ctx, claims, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, doc.StoredName); err != nil {
		// Melhor esforço: os metadados são a autoridade e serão removidos
		log.Printf("Erro ao remover artefato '%s': %v", doc.StoredName, err)
	}

	if err := s.store.DeleteDocument(ctx, doc.ID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		log.Printf("Erro ao remover documento %d do store: %v", doc.ID, err)
		return fmt.Errorf("erro interno ao remover documento")
	}

	return nil
}

// FormatFileSize formata um tamanho em bytes de forma legível
// ("0 Bytes", "10 Bytes", "1.5 KB"), com até duas casas decimais e
// zeros finais removidos
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[i]
}
