package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/company"
	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.Repository
	companyRepo  company.Repository
}

func NewEmployeeService(employeeRepo employee.Repository, companyRepo company.Repository) employee.Service {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
	}
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             e.ID,
		CompanyID:      e.CompanyID,
		CompanyName:    e.CompanyName,
		FullName:       e.FullName,
		Email:          e.Email,
		Position:       e.Position,
		EmploymentType: string(e.EmploymentType),
		PayRate:        e.PayRate,
		HireDate:       e.HireDate.Format(time.DateOnly),
		Status:         string(e.Status),
	}
}

// Create implements employee.Service.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyData, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if companyData.Status != company.StatusActive {
		return employee.EmployeeResponse{}, company.ErrCompanyInactive
	}

	hireDate, _ := time.Parse(time.DateOnly, req.HireDate)
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:      req.CompanyID,
		FullName:       req.FullName,
		Email:          req.Email,
		Position:       req.Position,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		PayRate:        req.PayRate,
		HireDate:       hireDate,
		Status:         employee.StatusActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	created.CompanyName = &companyData.Name

	return toEmployeeResponse(created), nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(e), nil
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// Deactivate implements employee.Service.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	inactive := string(employee.StatusInactive)
	return s.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{ID: id, Status: &inactive})
}
