package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docregistry-backend/internal/api"
	"docregistry-backend/internal/auth"
	"docregistry-backend/internal/config"
	"docregistry-backend/internal/repository"
	"docregistry-backend/internal/service"
	"docregistry-backend/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
)

// Validade fixa de cada token de sessão emitido
const tokenValidity = 8 * time.Hour

func main() {
	// Carregar o arquivo .env antes da configuração
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: não foi possível carregar o arquivo .env: %v. (Usando variáveis de ambiente existentes)", err)
	}

	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Falha ao carregar configuração: %v", err)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()

	// Backend de artefatos: disco local por padrão, S3 quando configurado
	blobs, err := newBlobStore(initCtx, &cfg)
	if err != nil {
		log.Fatalf("Falha ao iniciar armazenamento de artefatos: %v", err)
	}

	// Metadados vivem apenas em memória: um reinício perde usuários e
	// documentos registrados (limitação conhecida do escopo atual)
	store := repository.NewInMemoryStore()

	tokenService, err := auth.NewTokenService(cfg.JWTSecret, tokenValidity)
	if err != nil {
		log.Fatalf("Falha ao iniciar TokenService: %v", err)
	}

	userService := service.NewUserService(store)
	documentService := service.NewDocumentService(store, blobs)

	// Administrador padrão de primeiro arranque
	if err := userService.EnsureAdmin(initCtx); err != nil {
		log.Fatalf("Falha ao criar administrador padrão: %v", err)
	}

	handler := api.NewHandler(userService, documentService, tokenService, cfg.UploadsDir)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler.Routes(),
		ReadTimeout:  30 * time.Second, // uploads de até 50 MiB
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Servidor iniciado em http://localhost:%d/api", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	// Aguardar sinal de interrupção
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Recebido sinal de desligamento, encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Erro no graceful shutdown: %v", err)
	}
	log.Println("Servidor encerrado.")
}

// newBlobStore seleciona o backend de artefatos a partir da configuração
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		if cfg.AWSBucketName == "" || cfg.AWSRegion == "" {
			return nil, fmt.Errorf("AWS_BUCKET_NAME e AWS_REGION são obrigatórios com STORAGE_BACKEND=s3")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar configuração AWS: %w", err)
		}
		return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.AWSBucketName)
	case "disk":
		return storage.NewDiskStore(cfg.UploadsDir)
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND desconhecido: %q", cfg.StorageBackend)
	}
}
