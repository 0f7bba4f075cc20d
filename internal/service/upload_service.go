package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"barriotips/api/internal/config"
	"barriotips/api/internal/ids"
	"barriotips/api/internal/media/sniffer"
	"barriotips/api/internal/media/svg"
	"barriotips/api/internal/storage"
)

// UploadService stores tip images in the object store and hands back the
// public URL; no metadata record is kept, the URL ends up on the tip.
type UploadService struct {
	store *storage.ObjectStore
	cfg   config.StorageConfig
	log   zerolog.Logger
}

func NewUploadService(store *storage.ObjectStore, cfg config.StorageConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

func (s *UploadService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", errors.New("invalid file payload")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty file")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(header.Header))
	if declared != "" && declared != result.MIME {
		return "", fmt.Errorf("content type mismatch: declared %s, actual %s", declared, result.MIME)
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return "", fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	objectKey := s.buildObjectKey(string(result.Type))
	_, err = s.store.Client().PutObject(ctx, s.cfg.BucketImages, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: result.MIME,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	s.log.Info().Str("object_key", objectKey).Int("size", len(data)).Msg("tip image stored")

	return s.buildPublicURL(objectKey), nil
}

func (s *UploadService) buildObjectKey(ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}

func (s *UploadService) buildPublicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.BucketImages, objectKey)
}
