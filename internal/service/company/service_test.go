package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/peoplekit/payroll-backend-go/internal/domain/company"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	companies map[string]company.Company
	seq       int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]company.Company)}
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (company.Company, error) {
	for _, existing := range f.companies {
		if existing.Name == c.Name {
			return company.Company{}, company.ErrCompanyNameExists
		}
	}
	f.seq++
	c.ID = fmt.Sprintf("company-%d", f.seq)
	f.companies[c.ID] = c
	return c, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, filter company.CompanyFilter) ([]company.Company, int64, error) {
	out := []company.Company{}
	for _, c := range f.companies {
		if filter.Status != nil && string(c.Status) != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, req company.UpdateCompanyRequest) error {
	c, ok := f.companies[req.ID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Status != nil {
		c.Status = company.Status(*req.Status)
	}
	f.companies[req.ID] = c
	return nil
}

func (f *fakeCompanyRepo) SetStatus(ctx context.Context, id string, status company.Status) error {
	c, ok := f.companies[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	c.Status = status
	f.companies[id] = c
	return nil
}

func TestCompanyService_Create(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())

	res, err := svc.Create(context.Background(), company.CreateCompanyRequest{Name: "Acme Outsourcing"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Outsourcing", res.Name)
	assert.Equal(t, string(company.StatusActive), res.Status)

	_, err = svc.Create(context.Background(), company.CreateCompanyRequest{Name: "Acme Outsourcing"})
	assert.ErrorIs(t, err, company.ErrCompanyNameExists)
}

func TestCompanyService_Create_Validation(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())

	badEmail := "not-an-email"
	_, err := svc.Create(context.Background(), company.CreateCompanyRequest{
		Name:         "",
		ContactEmail: &badEmail,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestCompanyService_Deactivate(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)

	created, err := svc.Create(context.Background(), company.CreateCompanyRequest{Name: "Acme Outsourcing"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(company.StatusInactive), got.Status)

	err = svc.Deactivate(context.Background(), "missing-id")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_List_PaginationDefaults(t *testing.T) {
	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)

	_, err := svc.Create(context.Background(), company.CreateCompanyRequest{Name: "Acme Outsourcing"})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), company.CompanyFilter{Page: -3, Limit: 900})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
	assert.Equal(t, int64(1), list.TotalCount)
}
