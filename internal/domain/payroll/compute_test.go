package payroll

import (
	"testing"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeImmediate(t *testing.T) {
	tests := []struct {
		name          string
		regularHours  string
		overtimeHours string
		rate          string
		gross         string
		deductions    string
		net           string
	}{
		{
			name:          "regular day with overtime",
			regularHours:  "8",
			overtimeHours: "2",
			rate:          "100",
			gross:         "1100",
			deductions:    "110",
			net:           "990",
		},
		{
			name:          "no overtime",
			regularHours:  "8",
			overtimeHours: "0",
			rate:          "150",
			gross:         "1200",
			deductions:    "120",
			net:           "1080",
		},
		{
			name:          "zero hours",
			regularHours:  "0",
			overtimeHours: "0",
			rate:          "100",
			gross:         "0",
			deductions:    "0",
			net:           "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeImmediate(
				decimal.RequireFromString(tt.regularHours),
				decimal.RequireFromString(tt.overtimeHours),
				decimal.RequireFromString(tt.rate),
			)

			assert.Equal(t, tt.gross, got.GrossPay.String())
			assert.Equal(t, tt.deductions, got.Deductions.String())
			assert.Equal(t, tt.net, got.NetPay.String())
		})
	}
}

func TestComputePeriod_MonthlyProRata(t *testing.T) {
	emp := employee.Employee{
		EmploymentType: employee.EmploymentTypeRegular,
		PayRate:        decimal.NewFromInt(20000),
	}

	// 15 of June's 30 days, no overtime: half the salary, 10% tax.
	got := ComputePeriod(emp,
		decimal.NewFromInt(120), decimal.Zero,
		date(2025, time.June, 1), date(2025, time.June, 15),
	)

	assert.Equal(t, "10000", got.GrossPay.String())
	assert.Equal(t, "1000", got.Deductions.String())
	assert.Equal(t, "9000", got.NetPay.String())
}

func TestComputePeriod_MonthlyFullMonth(t *testing.T) {
	emp := employee.Employee{
		EmploymentType: employee.EmploymentTypeRegular,
		PayRate:        decimal.NewFromInt(30000),
	}

	got := ComputePeriod(emp,
		decimal.NewFromInt(160), decimal.Zero,
		date(2025, time.April, 1), date(2025, time.April, 30),
	)

	assert.Equal(t, "30000", got.GrossPay.String())
	assert.Equal(t, "3000", got.Deductions.String())
	assert.Equal(t, "27000", got.NetPay.String())
}

func TestComputePeriod_MonthlyOvertime(t *testing.T) {
	emp := employee.Employee{
		EmploymentType: employee.EmploymentTypeRegular,
		PayRate:        decimal.NewFromInt(24000),
	}

	// June: hourly rate = 24000/30/8 = 100; 4 OT hours at 1.25 = 500.
	got := ComputePeriod(emp,
		decimal.NewFromInt(120), decimal.NewFromInt(4),
		date(2025, time.June, 1), date(2025, time.June, 15),
	)

	assert.Equal(t, "500", got.OvertimePay.String())
	assert.Equal(t, "12500", got.GrossPay.String())
	assert.Equal(t, "1250", got.Deductions.String())
	assert.Equal(t, "11250", got.NetPay.String())
}

func TestComputePeriod_Hourly(t *testing.T) {
	emp := employee.Employee{
		EmploymentType: employee.EmploymentTypeContract,
		PayRate:        decimal.NewFromInt(100),
	}

	got := ComputePeriod(emp,
		decimal.NewFromInt(40), decimal.NewFromInt(5),
		date(2025, time.June, 1), date(2025, time.June, 7),
	)

	assert.Equal(t, "4000", got.RegularPay.String())
	assert.Equal(t, "625", got.OvertimePay.String())
	assert.Equal(t, "4625", got.GrossPay.String())
	assert.Equal(t, "462.5", got.Deductions.String())
	assert.Equal(t, "4162.5", got.NetPay.String())
}

func TestPayrollStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusProcessed))
	assert.False(t, StatusPending.CanTransitionTo(StatusPaid))
	assert.True(t, StatusProcessed.CanTransitionTo(StatusPaid))
	assert.False(t, StatusProcessed.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaid.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaid.CanTransitionTo(StatusProcessed))
}
