package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"docregistry-backend/internal/apperr"
)

// DiskStore grava cada artefato como um arquivo individual sob um
// diretório raiz dedicado
type DiskStore struct {
	root string
}

// NewDiskStore cria o store apontando para o diretório raiz,
// criando-o se necessário
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de uploads: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root devolve o diretório raiz do armazenamento
func (d *DiskStore) Root() string {
	return d.root
}

// Write persiste os bytes sob um nome gerado pelo servidor e devolve o
// nome armazenado, o digest SHA-256 e o tamanho gravado
func (d *DiskStore) Write(ctx context.Context, data []byte, originalName string) (*WriteResult, error) {
	storedName := newStoredName(originalName)
	path := filepath.Join(d.root, storedName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("falha ao gravar artefato: %w", err)
	}

	sum := sha256.Sum256(data)
	return &WriteResult{
		StoredName: storedName,
		Digest:     hex.EncodeToString(sum[:]),
		Size:       int64(len(data)),
	}, nil
}

// Read devolve os bytes do artefato. A ausência do arquivo indica deriva
// entre metadados e disco e é sinalizada como tal.
func (d *DiskStore) Read(ctx context.Context, storedName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, storedName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrArtifactMissing
		}
		return nil, fmt.Errorf("falha ao ler artefato: %w", err)
	}
	return data, nil
}

// Delete remove o artefato do disco; ausência não é erro
func (d *DiskStore) Delete(ctx context.Context, storedName string) error {
	err := os.Remove(filepath.Join(d.root, storedName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("falha ao remover artefato: %w", err)
	}
	return nil
}
