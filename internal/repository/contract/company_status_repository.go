package contract

import "assessform-client/internal/entity"

type ICompanyStatusRepository interface {
	Get(companyID string) (*entity.CompanyStatus, bool)
	Set(status *entity.CompanyStatus)
	Invalidate(companyID string)
}
