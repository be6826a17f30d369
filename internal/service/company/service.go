package company

import (
	"context"
	"fmt"

	"github.com/peoplekit/payroll-backend-go/internal/domain/company"
)

type CompanyServiceImpl struct {
	companyRepo company.Repository
}

func NewCompanyService(companyRepo company.Repository) company.Service {
	return &CompanyServiceImpl{companyRepo: companyRepo}
}

func toCompanyResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		ContactEmail:  c.ContactEmail,
		ContactPhone:  c.ContactPhone,
		Address:       c.Address,
		Status:        string(c.Status),
	}
}

// Create implements company.Service.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		Status:        company.StatusActive,
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return toCompanyResponse(created), nil
}

// Get implements company.Service.
func (s *CompanyServiceImpl) Get(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(c), nil
}

// List implements company.Service.
func (s *CompanyServiceImpl) List(ctx context.Context, filter company.CompanyFilter) (company.ListCompanyResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	companies, total, err := s.companyRepo.List(ctx, filter)
	if err != nil {
		return company.ListCompanyResponse{}, fmt.Errorf("failed to list companies: %w", err)
	}

	data := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		data = append(data, toCompanyResponse(c))
	}

	return company.ListCompanyResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements company.Service.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	if _, err := s.companyRepo.GetByID(ctx, req.ID); err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.companyRepo.Update(ctx, req); err != nil {
		return company.CompanyResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// Deactivate implements company.Service.
func (s *CompanyServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.SetStatus(ctx, id, company.StatusInactive)
}
