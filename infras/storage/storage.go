package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"hotel/config"
	"hotel/infras/cloudinary"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ProviderS3         = "s3"
	ProviderCloudinary = "cloudinary"
)

// Storage uploads files and returns their public URL; DeleteFile takes that URL back.
type Storage interface {
	UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	DeleteFile(ctx context.Context, url string) error
}

func New(config *config.Config, otel otel.Otel) Storage {
	provider := strings.ToLower(config.External.Storage.Provider)

	log.Info().Str("provider", provider).Msg("Initializing file storage")

	if provider == ProviderCloudinary {
		return cloudinary.New(config, otel)
	}

	return s3.New(config, otel)
}
