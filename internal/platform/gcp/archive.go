package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

// ArchiveService keeps a service-owned copy of every binary asset published
// through the pipeline. Drive objects belong to the educator and can vanish;
// the archive bucket is ours. Archival is best-effort and never blocks a
// publication.
type ArchiveService interface {
	Archive(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
}

type archiveService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
}

func NewArchiveService(log *logger.Logger) (ArchiveService, error) {
	serviceLog := log.With("service", "ArchiveService")
	bucket := strings.TrimSpace(os.Getenv("ASSET_ARCHIVE_GCS_BUCKET"))
	if bucket == "" {
		return nil, fmt.Errorf("missing env var ASSET_ARCHIVE_GCS_BUCKET")
	}

	ctx := context.Background()
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if saPath := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); saPath != "" {
		opts = append(opts, option.WithCredentialsFile(saPath))
	}
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info("Asset archive initialized", "bucket", bucket)
	return &archiveService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
	}, nil
}

func (as *archiveService) Archive(ctx context.Context, key, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := as.storageClient.Bucket(as.bucketName).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (as *archiveService) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", as.bucketName, key)
}
