// Package storage gerencia os bytes brutos dos artefatos em mídia durável.
// Os artefatos são nomeados de forma opaca pelo servidor, nunca pelo nome
// enviado pelo cliente, e recebem um digest SHA-256 no momento da gravação.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docregistry-backend/internal/apperr"

	"github.com/google/uuid"
)

// MaxUploadSize é o tamanho máximo aceito para um artefato (50 MiB)
const MaxUploadSize = 50 * 1024 * 1024

// allowedContentTypes é a lista fixa de tipos MIME declarados aceitos no
// upload. O tipo declarado não é conferido contra o conteúdo real dos bytes.
var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":      true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/zip": true,
}

// WriteResult descreve o que o armazenamento registrou sobre os bytes gravados
type WriteResult struct {
	StoredName string
	Digest     string // SHA-256 em hexadecimal dos bytes exatos gravados
	Size       int64
}

// BlobStore define a interface de armazenamento de artefatos.
// Delete é idempotente: a ausência não é erro, o objetivo é "garantir ausência".
type BlobStore interface {
	Write(ctx context.Context, data []byte, originalName string) (*WriteResult, error)
	Read(ctx context.Context, storedName string) ([]byte, error)
	Delete(ctx context.Context, storedName string) error
}

// CheckConstraints valida tamanho e tipo declarado antes da gravação
func CheckConstraints(size int64, contentType string) error {
	if size > MaxUploadSize {
		return apperr.ErrPayloadTooLarge
	}
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: %s", apperr.ErrUnsupportedType, contentType)
	}
	return nil
}

// sanitizeName reduz o nome original a um fragmento seguro para uso em
// nome de arquivo: descarta qualquer componente de caminho e substitui
// caracteres de travessia ou reservados
func sanitizeName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.ReplaceAll(name, "..", "_")

	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" || out == "." {
		out = "arquivo"
	}
	return out
}

// newStoredName gera um nome resistente a colisões: timestamp da gravação,
// sufixo aleatório e fragmento sanitizado do nome original
func newStoredName(originalName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], sanitizeName(originalName))
}
