package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"assessform-client/internal/entity"
)

// LocalStrategy persists bytes without touching the network, so the fallback
// chain always terminates. If the directory is unwritable the bytes are kept
// in memory under the same key; Attempt never fails for validated input.
type LocalStrategy struct {
	dir string

	mu     sync.Mutex
	memory map[string][]byte
}

var _ Strategy = &LocalStrategy{}

func NewLocalStrategy(dir string) *LocalStrategy {
	return &LocalStrategy{
		dir:    dir,
		memory: make(map[string][]byte),
	}
}

func (s *LocalStrategy) Name() entity.UploadTier {
	return entity.TierLocal
}

func (s *LocalStrategy) Attempt(_ context.Context, in *Input) (*entity.AttachmentDescriptor, error) {
	key := fmt.Sprintf("%s/%s/upload-%s-%s", in.CompanyID, in.QuestionID, uuid.New().String(), in.FileName)

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if err := os.WriteFile(path, in.Data, 0o644); err == nil {
			return s.describe(in, key), nil
		}
	}

	s.mu.Lock()
	s.memory[key] = append([]byte(nil), in.Data...)
	s.mu.Unlock()

	return s.describe(in, key), nil
}

// Bytes returns locally stored content by key, checking the in-memory store
// first. Used by callers that need to re-read a locally persisted attachment.
func (s *LocalStrategy) Bytes(key string) ([]byte, bool) {
	s.mu.Lock()
	if data, ok := s.memory[key]; ok {
		s.mu.Unlock()
		return data, true
	}
	s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *LocalStrategy) describe(in *Input, key string) *entity.AttachmentDescriptor {
	return &entity.AttachmentDescriptor{
		FileName:   in.FileName,
		FileSize:   int64(len(in.Data)),
		MimeType:   in.MimeType,
		StorageKey: key,
		Tier:       entity.TierLocal,
		UploadedAt: time.Now().UTC(),
	}
}
