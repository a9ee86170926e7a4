package models

import (
	"time"

	"github.com/google/uuid"
)

// Papéis possíveis de um usuário
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa um usuário no sistema
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Nunca expor em JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Document representa os metadados de um documento registrado.
// Name é o nome exibido fornecido pelo cliente (não confiável);
// StoredName é o nome do artefato gerado pelo servidor.
type Document struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StoredName    string    `json:"-"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"type"`
	Digest        string    `json:"hash"` // SHA-256 dos bytes no momento do upload
	OwnerID       uuid.UUID `json:"userId"`
	OwnerUsername string    `json:"username"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// DocumentSummary é a projeção de Document devolvida pela listagem
type DocumentSummary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"type"`
	UploadedAt    time.Time `json:"uploadedAt"`
	SizeFormatted string    `json:"sizeFormatted"`
}
