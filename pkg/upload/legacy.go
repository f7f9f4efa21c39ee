package upload

import (
	"context"
	"time"

	"assessform-client/internal/entity"
	"assessform-client/pkg/formsapi"
)

// LegacyStrategy pushes the bytes through the collaborator's general-purpose
// endpoint; the storage write happens server-side.
type LegacyStrategy struct {
	client formsapi.Client
}

var _ Strategy = &LegacyStrategy{}

func NewLegacyStrategy(client formsapi.Client) *LegacyStrategy {
	return &LegacyStrategy{client: client}
}

func (s *LegacyStrategy) Name() entity.UploadTier {
	return entity.TierLegacy
}

func (s *LegacyStrategy) Attempt(ctx context.Context, in *Input) (*entity.AttachmentDescriptor, error) {
	res, err := s.client.LegacyUpload(ctx, in.CompanyID, in.QuestionID, in.FileName, in.MimeType, in.Data)
	if err != nil {
		return nil, err
	}

	return &entity.AttachmentDescriptor{
		FileName:   in.FileName,
		FileSize:   int64(len(in.Data)),
		MimeType:   in.MimeType,
		StorageKey: res.FilePath,
		Tier:       entity.TierLegacy,
		UploadedAt: time.Now().UTC(),
	}, nil
}
