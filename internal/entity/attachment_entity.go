package entity

import "time"

type UploadTier string

const (
	TierSecure UploadTier = "secure"
	TierLegacy UploadTier = "legacy"
	TierLocal  UploadTier = "local"
)

// AttachmentDescriptor is immutable once created. Callers must render it the
// same way regardless of which tier produced it.
type AttachmentDescriptor struct {
	FileName   string
	FileSize   int64
	MimeType   string
	StorageKey string
	Tier       UploadTier
	UploadedAt time.Time
}
