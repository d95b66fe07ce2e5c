// Package blob stores uploaded files on Cloudinary.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

var ErrNotConfigured = errors.New("cloudinary credentials are not configured")

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func (c Config) complete() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// CloudinaryStore uploads with resource type auto so images, video and raw
// files share one endpoint.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    zerolog.Logger
}

func NewCloudinaryStore(cfg Config, log zerolog.Logger) (*CloudinaryStore, error) {
	if !cfg.complete() {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{
		cld:    cld,
		folder: cfg.Folder,
		log:    log.With().Str("component", "cloudinary").Logger(),
	}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, name string, body io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, body, s.uploadParams(name))
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	s.log.Debug().
		Str("public_id", resp.PublicID).
		Int("bytes", resp.Bytes).
		Msg("file uploaded")
	return resp.SecureURL, nil
}

// uploadParams never overwrites an existing asset: a clash on public_id
// leaves the stored file in place.
func (s *CloudinaryStore) uploadParams(name string) uploader.UploadParams {
	return uploader.UploadParams{
		PublicID:     publicID(name),
		Folder:       s.folder,
		ResourceType: "auto",
		Overwrite:    api.Bool(false),
	}
}

// publicID drops the extension; Cloudinary appends the detected format.
func publicID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Disabled stands in when no Cloudinary credentials are configured in
// development. Every Put fails with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
