package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"assessform-client/internal/entity"
	"assessform-client/internal/repository/contract"
)

type CompanyStatusRepository struct {
	cache *cache.Cache
}

var _ contract.ICompanyStatusRepository = &CompanyStatusRepository{}

func NewCompanyStatusRepository() *CompanyStatusRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CompanyStatusRepository{
		cache: c,
	}
}

func (r *CompanyStatusRepository) Get(companyID string) (*entity.CompanyStatus, bool) {
	if x, found := r.cache.Get(companyID); found {
		return x.(*entity.CompanyStatus), true
	}
	return nil, false
}

func (r *CompanyStatusRepository) Set(status *entity.CompanyStatus) {
	r.cache.Set(status.CompanyID, status, cache.DefaultExpiration)
}

func (r *CompanyStatusRepository) Invalidate(companyID string) {
	r.cache.Delete(companyID)
}
