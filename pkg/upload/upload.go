package upload

import (
	"context"

	"github.com/go-playground/validator/v10"

	"assessform-client/internal/apperror"
	"assessform-client/internal/entity"
	"assessform-client/internal/pkg/logger"
)

// MaxFileSize is the pre-flight ceiling. Violations never reach a tier.
const MaxFileSize = 10 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"text/csv":   true,
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

type Input struct {
	CompanyID  string `validate:"required"`
	QuestionID string `validate:"required"`
	FileName   string `validate:"required"`
	MimeType   string `validate:"required"`
	Data       []byte `validate:"required"`
}

// Strategy is one candidate backend in the fallback chain.
type Strategy interface {
	Name() entity.UploadTier
	Attempt(ctx context.Context, in *Input) (*entity.AttachmentDescriptor, error)
}

// SessionGate gates upload activity on session readiness. Outside a ready
// session uploads fail fast; nothing is queued or retried.
type SessionGate interface {
	EnsureReady() error
}

// Orchestrator walks its strategies in order until one succeeds. The chain is
// built so the last tier cannot fail for validated input, so Upload only
// returns an error when the session is not ready or pre-flight validation
// rejects the input.
type Orchestrator struct {
	strategies []Strategy
	gate       SessionGate
	validate   *validator.Validate
	logger     logger.ILogger
}

func NewOrchestrator(logger logger.ILogger, gate SessionGate, strategies ...Strategy) *Orchestrator {
	return &Orchestrator{
		strategies: strategies,
		gate:       gate,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (o *Orchestrator) Upload(ctx context.Context, in *Input) (*entity.AttachmentDescriptor, error) {
	if err := o.gate.EnsureReady(); err != nil {
		return nil, err
	}
	if err := o.preflight(in); err != nil {
		return nil, err
	}

	var lastErr error
	for _, strategy := range o.strategies {
		desc, err := strategy.Attempt(ctx, in)
		if err == nil {
			o.logger.Info("upload", "file uploaded", map[string]interface{}{
				"tier":     string(desc.Tier),
				"fileName": desc.FileName,
				"key":      desc.StorageKey,
			})
			return desc, nil
		}

		// Classification is advisory: any tier failure falls through.
		lastErr = err
		o.logger.Warn("upload", "tier failed, falling through", map[string]interface{}{
			"tier":  string(strategy.Name()),
			"kind":  string(apperror.KindOf(err)),
			"error": err.Error(),
		})
	}

	return nil, lastErr
}

func (o *Orchestrator) preflight(in *Input) error {
	if err := o.validate.Struct(in); err != nil {
		return apperror.Wrap(apperror.KindInvalidAttachment, "invalid upload input", err)
	}
	if int64(len(in.Data)) > MaxFileSize {
		return apperror.Newf(apperror.KindInvalidAttachment, "file %s exceeds %d bytes", in.FileName, MaxFileSize)
	}
	if !allowedMimeTypes[in.MimeType] {
		return apperror.Newf(apperror.KindInvalidAttachment, "mime type %s is not allowed", in.MimeType)
	}
	return nil
}
