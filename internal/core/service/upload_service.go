package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type UploadService struct {
	store ports.BlobStore
	log   zerolog.Logger
}

func NewUploadService(store ports.BlobStore, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, log: log}
}

// Upload forwards body to the blob store under a collision-free name derived
// from filename and returns the public URL.
func (s *UploadService) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	if body == nil {
		return "", domain.NewValidationError("file", "file is required")
	}

	name := uniqueName(filename)
	url, err := s.store.Put(ctx, name, body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	s.log.Info().Str("name", name).Str("url", url).Msg("file uploaded")
	return url, nil
}

// uniqueName appends a random UUID before the extension:
// "avatar.png" -> "avatar-1b4e28ba-2fa1-11d2-883f-0016d3cca427.png".
func uniqueName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "file"
	}
	return fmt.Sprintf("%s-%s%s", stem, uuid.NewString(), ext)
}
