package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/common"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/server/storage"
)

const (
	MaxLogoBytes       = 2 << 20
	MaxAttachmentBytes = 50 << 20
)

// ObjectStore is the subset of storage.S3Store the services use.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, size int64) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// PresignedUpload is where the client PUTs the blob and the key it is
// stored under.
type PresignedUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// FileService hands out presigned URLs scoped to the caller's key prefix.
type FileService struct {
	store ObjectStore
	log   logging.Logger
	now   func() time.Time
}

func NewFileService(store ObjectStore, log logging.Logger) *FileService {
	return &FileService{store: store, log: log.With("module", "files"), now: time.Now}
}

func userKeyPrefix(userID string) string { return "users/" + userID + "/" }

func ownsKey(userID, key string) bool {
	return userID != "" && strings.HasPrefix(key, userKeyPrefix(userID)) && !strings.Contains(key, "..")
}

// PresignLogoUpload signs an image upload of exactly size bytes, at most
// MaxLogoBytes.
func (s *FileService) PresignLogoUpload(ctx context.Context, userID, contentType string, size int64) (*PresignedUpload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.Invalid("content_type", "must be an image")
	}
	return s.presignUpload(ctx, userID, contentType, size, MaxLogoBytes)
}

func (s *FileService) PresignAttachmentUpload(ctx context.Context, userID, contentType string, size int64) (*PresignedUpload, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.presignUpload(ctx, userID, contentType, size, MaxAttachmentBytes)
}

func (s *FileService) presignUpload(ctx context.Context, userID, contentType string, size, limit int64) (*PresignedUpload, error) {
	if size <= 0 {
		return nil, common.Invalid("size", "must be positive")
	}
	if size > limit {
		return nil, common.Invalid("size", fmt.Sprintf("must not exceed %d bytes", limit))
	}

	key := storage.NewKey(userID, s.now())
	url, err := s.store.PresignPut(ctx, key, contentType, size)
	if err != nil {
		s.log.Error(ctx, "presign put failed", "error", err)
		return nil, common.ErrInternal
	}
	return &PresignedUpload{URL: url, Key: key}, nil
}

// PresignDownload signs a GET for one of the caller's own keys. Foreign
// keys look missing.
func (s *FileService) PresignDownload(ctx context.Context, userID, key string) (string, error) {
	if !ownsKey(userID, key) {
		return "", common.ErrNotFound
	}
	url, err := s.store.PresignGet(ctx, key)
	if err != nil {
		s.log.Error(ctx, "presign get failed", "error", err)
		return "", common.ErrInternal
	}
	return url, nil
}
