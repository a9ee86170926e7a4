package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"docregistry-backend/internal/apperr"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store grava artefatos em um bucket S3, como alternativa ao disco
// local. O contrato é o mesmo do DiskStore; o digest é calculado
// localmente sobre os bytes exatos enviados.
type S3Store struct {
	client     *s3.Client
	bucketName string
}

// NewS3Store cria um novo store sobre o cliente S3
func NewS3Store(client *s3.Client, bucketName string) (*S3Store, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("nome do bucket não pode ser vazio")
	}
	return &S3Store{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (s *S3Store) Write(ctx context.Context, data []byte, originalName string) (*WriteResult, error) {
	storedName := newStoredName(originalName)
	sum := sha256.Sum256(data)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storedName),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao gravar artefato no S3: %w", err)
	}

	return &WriteResult{
		StoredName: storedName,
		Digest:     hex.EncodeToString(sum[:]),
		Size:       int64(len(data)),
	}, nil
}

func (s *S3Store) Read(ctx context.Context, storedName string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storedName),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperr.ErrArtifactMissing
		}
		return nil, fmt.Errorf("falha ao ler artefato do S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler corpo do artefato do S3: %w", err)
	}
	return data, nil
}

// Delete remove o objeto; o DeleteObject do S3 já é idempotente para
// chaves ausentes
func (s *S3Store) Delete(ctx context.Context, storedName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storedName),
	})
	if err != nil {
		return fmt.Errorf("falha ao remover artefato do S3: %w", err)
	}
	return nil
}
