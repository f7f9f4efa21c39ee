package service

import (
	"context"

	"assessform-client/internal/entity"
	"assessform-client/internal/mapper"
	"assessform-client/internal/pkg/logger"
	"assessform-client/internal/repository/contract"
	"assessform-client/pkg/formsapi"
)

type ICompanyStatusService interface {
	// Refresh replaces the cached snapshot wholesale. On failure the previous
	// snapshot stays in place (stale-but-available) and is returned instead.
	Refresh(ctx context.Context, companyID string) (*entity.CompanyStatus, bool)
	Current(companyID string) (*entity.CompanyStatus, bool)
	Invalidate(companyID string)
}

type companyStatusService struct {
	client formsapi.Client
	repo   contract.ICompanyStatusRepository
	logger logger.ILogger
}

func NewCompanyStatusService(
	client formsapi.Client,
	repo contract.ICompanyStatusRepository,
	logger logger.ILogger,
) ICompanyStatusService {
	return &companyStatusService{
		client: client,
		repo:   repo,
		logger: logger,
	}
}

func (s *companyStatusService) Refresh(ctx context.Context, companyID string) (*entity.CompanyStatus, bool) {
	res, err := s.client.CompanyStatus(ctx, companyID)
	if err != nil {
		s.logger.Warn("company-status", "refresh failed, keeping previous snapshot", map[string]interface{}{
			"companyId": companyID,
			"error":     err.Error(),
		})
		return s.repo.Get(companyID)
	}

	status := mapper.ToCompanyStatus(companyID, res)
	s.repo.Set(status)

	s.logger.Debug("company-status", "snapshot refreshed", map[string]interface{}{
		"companyId":      companyID,
		"employeeCount":  status.EmployeeCount,
		"nextEmployeeId": status.NextEmployeeID,
	})
	return status, true
}

func (s *companyStatusService) Current(companyID string) (*entity.CompanyStatus, bool) {
	return s.repo.Get(companyID)
}

func (s *companyStatusService) Invalidate(companyID string) {
	s.repo.Invalidate(companyID)
}
