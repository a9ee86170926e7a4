package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config armazena a configuração da aplicação.
// AWSBucketName e AWSRegion só são exigidos quando StorageBackend é "s3";
// a validação condicional acontece no main.
type Config struct {
	ServerPort     int    `envconfig:"SERVER_PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	UploadsDir     string `envconfig:"UPLOADS_DIR" default:"./uploads"`
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"disk"`
	AWSBucketName  string `envconfig:"AWS_BUCKET_NAME"`
	AWSRegion      string `envconfig:"AWS_REGION"`
}

// Load carrega a configuração das variáveis de ambiente
func Load(cfg *Config) error {
	return envconfig.Process("", cfg)
}
