package company

import "context"

type Repository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]Company, int64, error)
	Update(ctx context.Context, req UpdateCompanyRequest) error
	SetStatus(ctx context.Context, id string, status Status) error
}

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Get(ctx context.Context, id string) (CompanyResponse, error)
	List(ctx context.Context, filter CompanyFilter) (ListCompanyResponse, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
	Deactivate(ctx context.Context, id string) error
}
