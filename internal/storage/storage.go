package storage

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ObjectStorage abstracts the third-party object store that holds uploaded
// attachments. Provider semantics are out of scope; the backend only keeps
// keys.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

var ErrNotConfigured = errors.New("object_storage_not_configured")

// Unconfigured is the default ObjectStorage binding. Upload fails loudly;
// delete and list degrade to no-ops so record cleanup never blocks on a
// missing provider.
type Unconfigured struct {
	log *zap.Logger
}

func NewUnconfigured(log *zap.Logger) *Unconfigured {
	return &Unconfigured{log: log.Named("storage")}
}

func (s *Unconfigured) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	s.log.Warn("object upload attempted without storage provider", zap.String("key", key))
	return "", ErrNotConfigured
}

func (s *Unconfigured) Delete(_ context.Context, key string) error {
	s.log.Debug("object delete skipped, no storage provider", zap.String("key", key))
	return nil
}

func (s *Unconfigured) List(context.Context, string) ([]string, error) {
	return nil, nil
}
