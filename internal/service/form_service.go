package service

import (
	"context"

	"assessform-client/internal/entity"
	"assessform-client/internal/mapper"
	"assessform-client/internal/pkg/logger"
	"assessform-client/pkg/formsapi"
)

type IFormService interface {
	// SwitchForm loads the question catalog for the given tab and rewires
	// the response store to it. Switching to the company tab also hydrates
	// previously saved company answers when the collaborator has them.
	SwitchForm(ctx context.Context, formType string) ([]entity.Question, error)
}

type formService struct {
	client  formsapi.Client
	session ISessionService
	store   IResponseService
	logger  logger.ILogger
}

func NewFormService(
	client formsapi.Client,
	session ISessionService,
	store IResponseService,
	logger logger.ILogger,
) IFormService {
	return &formService{
		client:  client,
		session: session,
		store:   store,
		logger:  logger,
	}
}

func (s *formService) SwitchForm(ctx context.Context, formType string) ([]entity.Question, error) {
	defs, err := s.client.FormConfig(ctx, formType)
	if err != nil {
		return nil, err
	}

	questions := mapper.ToQuestions(defs)
	s.store.ConfigureForm(formType, questions)

	if formType == entity.FormTypeCompany {
		companyID := s.session.CompanyID()
		if companyID != "" {
			res, err := s.client.Company(ctx, companyID)
			if err != nil {
				// Non-fatal: the tab starts blank and answers stay local
				// until the next save.
				s.logger.Warn("form", "company data load failed", map[string]interface{}{
					"companyId": companyID,
					"error":     err.Error(),
				})
			} else if res.Found {
				s.store.Hydrate(res.Responses)
			}
		}
	}

	return questions, nil
}
