package cloudinary

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"mime/multipart"
	"path"
	"regexp"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
)

const uploadSegment = "/upload/"

var versionSegment = regexp.MustCompile(`^v\d+/`)

// Store keeps room images on Cloudinary.
type Store struct {
	client *cld.Cloudinary
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) *Store {
	client, err := cld.NewFromParams(
		config.External.Cloudinary.CloudName,
		config.External.Cloudinary.APIKey,
		config.External.Cloudinary.APISecret,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Cloudinary client")
	}

	return &Store{
		client: client,
		otel:   otel,
	}
}

func (c *Store) UploadFile(ctx context.Context, directory string, file multipart.File, _ *multipart.FileHeader, fileName string) (url string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelCloudinaryScopeName, constant.OtelCloudinaryScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if c.client == nil {
		return constant.Empty, fmt.Errorf("cloudinary client is not configured")
	}

	publicID := strings.TrimSuffix(fileName, path.Ext(fileName))
	scope.SetAttribute("public_id", publicID)

	result, err := c.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   directory,
		PublicID: publicID,
	})
	if err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("failed to upload file to Cloudinary")

		return constant.Empty, fmt.Errorf("failed to upload file to Cloudinary: %w", err)
	}

	if result.Error.Message != "" {
		return constant.Empty, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}

func (c *Store) DeleteFile(ctx context.Context, url string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelCloudinaryScopeName, constant.OtelCloudinaryScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if c.client == nil {
		return fmt.Errorf("cloudinary client is not configured")
	}

	publicID := PublicIDFromURL(url)
	if publicID == constant.Empty {
		return fmt.Errorf("url %q is not a Cloudinary delivery url", url)
	}

	scope.SetAttribute("public_id", publicID)

	result, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("failed to delete file from Cloudinary")

		return fmt.Errorf("failed to delete file from Cloudinary: %w", err)
	}

	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete: %s", result.Error.Message)
	}

	return nil
}

// PublicIDFromURL extracts "folder/name" from a delivery url such as
// https://res.cloudinary.com/demo/image/upload/v1700000000/rooms/deluxe.jpg.
func PublicIDFromURL(url string) string {
	idx := strings.Index(url, uploadSegment)
	if idx == -1 {
		return constant.Empty
	}

	rest := versionSegment.ReplaceAllString(url[idx+len(uploadSegment):], constant.Empty)

	return strings.TrimSuffix(rest, path.Ext(rest))
}
