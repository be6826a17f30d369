package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.IsActive = true
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) LinkEmployee(ctx context.Context, id string, employeeID string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.EmployeeID = &employeeID
	f.users[id] = u
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	out := []employee.Employee{}
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, companyID *string) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, e := range f.employees {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if _, ok := f.employees[req.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func activeEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:             id,
		CompanyID:      "company-1",
		FullName:       "Test Employee",
		Email:          id + "@example.com",
		EmploymentType: employee.EmploymentTypeRegular,
		PayRate:        decimal.NewFromInt(20000),
		Status:         employee.StatusActive,
	}
}

func TestUserService_Create(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeEmployeeRepo())

	res, err := svc.Create(context.Background(), user.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		FullName: "Jane Cruz",
		Role:     string(user.RoleManager),
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", res.Email)
	assert.Equal(t, string(user.RoleManager), res.Role)
	assert.True(t, res.IsActive)
	assert.Nil(t, res.EmployeeID)

	// The stored credential is a bcrypt hash, never the raw password.
	stored, err := userRepo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeEmployeeRepo())

	req := user.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		FullName: "Jane Cruz",
		Role:     string(user.RoleStaff),
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newFakeEmployeeRepo())

	_, err := svc.Create(context.Background(), user.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "short",
		FullName: "Jane Cruz",
		Role:     "superuser",
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestUserService_Create_InactiveEmployee(t *testing.T) {
	emp := activeEmployee("emp-1")
	emp.Status = employee.StatusInactive
	svc := NewUserService(newFakeUserRepo(), newFakeEmployeeRepo(emp))

	employeeID := "emp-1"
	_, err := svc.Create(context.Background(), user.CreateUserRequest{
		Email:      "jane@example.com",
		Password:   "s3cret-pass",
		FullName:   "Jane Cruz",
		Role:       string(user.RoleStaff),
		EmployeeID: &employeeID,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestUserService_LinkEmployee(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeEmployeeRepo(activeEmployee("emp-1")))

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		FullName: "Jane Cruz",
		Role:     string(user.RoleStaff),
	})
	require.NoError(t, err)

	res, err := svc.LinkEmployee(context.Background(), user.LinkEmployeeRequest{
		ID:         created.ID,
		EmployeeID: "emp-1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.EmployeeID)
	assert.Equal(t, "emp-1", *res.EmployeeID)

	// Unknown employee.
	_, err = svc.LinkEmployee(context.Background(), user.LinkEmployeeRequest{
		ID:         created.ID,
		EmployeeID: "emp-9",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUserService_LinkEmployee_InactiveEmployee(t *testing.T) {
	emp := activeEmployee("emp-1")
	emp.Status = employee.StatusInactive
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeEmployeeRepo(emp))

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		FullName: "Jane Cruz",
		Role:     string(user.RoleStaff),
	})
	require.NoError(t, err)

	_, err = svc.LinkEmployee(context.Background(), user.LinkEmployeeRequest{
		ID:         created.ID,
		EmployeeID: "emp-1",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}
