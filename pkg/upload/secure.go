package upload

import (
	"context"
	"time"

	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
	"assessform-client/pkg/formsapi"
)

// SecureStrategy requests a short-lived scoped credential and transfers the
// bytes directly to the credentialed target. Credential issuance failure and
// transfer failure are both tier failures.
type SecureStrategy struct {
	client formsapi.Client
}

var _ Strategy = &SecureStrategy{}

func NewSecureStrategy(client formsapi.Client) *SecureStrategy {
	return &SecureStrategy{client: client}
}

func (s *SecureStrategy) Name() entity.UploadTier {
	return entity.TierSecure
}

func (s *SecureStrategy) Attempt(ctx context.Context, in *Input) (*entity.AttachmentDescriptor, error) {
	presign, err := s.client.PresignUpload(ctx, &dto.PresignUploadRequest{
		CompanyID:  in.CompanyID,
		QuestionID: in.QuestionID,
		FileName:   in.FileName,
		FileSize:   int64(len(in.Data)),
		FileType:   in.MimeType,
	})
	if err != nil {
		return nil, err
	}

	if err := s.client.UploadPresigned(ctx, presign.UploadURL, in.MimeType, in.Data); err != nil {
		return nil, err
	}

	return &entity.AttachmentDescriptor{
		FileName:   in.FileName,
		FileSize:   int64(len(in.Data)),
		MimeType:   in.MimeType,
		StorageKey: presign.StorageKey,
		Tier:       entity.TierSecure,
		UploadedAt: time.Now().UTC(),
	}, nil
}
