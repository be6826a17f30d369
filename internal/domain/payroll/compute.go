package payroll

import (
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Two pay formulas coexist: single-record immediate processing and
// period-based generation. They intentionally differ (different overtime
// multipliers and deduction rules) and must not be unified without a
// confirmed business decision.
var (
	immediateOvertimeMultiplier = decimal.NewFromFloat(1.5)
	periodOvertimeMultiplier    = decimal.NewFromFloat(1.25)
	flatDeductionRate           = decimal.NewFromFloat(0.10)
	hoursPerWorkDay             = decimal.NewFromInt(8)
)

// Breakdown is the money result of a pay computation, rounded to 2 places.
type Breakdown struct {
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
}

// ComputeImmediate prices a single time record at its employee's rate:
// gross = regular*rate + overtime*rate*1.5, minus a flat 10% deduction.
func ComputeImmediate(regularHours, overtimeHours, rate decimal.Decimal) Breakdown {
	regularPay := regularHours.Mul(rate)
	overtimePay := overtimeHours.Mul(rate).Mul(immediateOvertimeMultiplier)
	gross := regularPay.Add(overtimePay)
	deductions := gross.Mul(flatDeductionRate)

	return roundBreakdown(Breakdown{
		RegularPay:  regularPay,
		OvertimePay: overtimePay,
		GrossPay:    gross,
		Deductions:  deductions,
		NetPay:      gross.Sub(deductions),
	})
}

// ComputePeriod prices an employee's aggregated hours for a pay period.
// Monthly-paid employees get their salary pro-rated by calendar days covered;
// hourly employees are paid per hour worked. Both paths deduct a 10% tax.
func ComputePeriod(emp employee.Employee, totalRegularHours, totalOvertimeHours decimal.Decimal, periodStart, periodEnd time.Time) Breakdown {
	var regularPay, overtimePay decimal.Decimal

	if emp.IsMonthlyPaid() {
		daysInPeriod := decimal.NewFromInt(int64(periodEnd.Sub(periodStart).Hours()/24) + 1)
		daysInMonth := decimal.NewFromInt(int64(daysIn(periodStart)))

		regularPay = emp.PayRate.Mul(daysInPeriod).Div(daysInMonth)
		hourlyRate := emp.PayRate.Div(daysInMonth).Div(hoursPerWorkDay)
		overtimePay = totalOvertimeHours.Mul(hourlyRate).Mul(periodOvertimeMultiplier)
	} else {
		regularPay = totalRegularHours.Mul(emp.PayRate)
		overtimePay = totalOvertimeHours.Mul(emp.PayRate).Mul(periodOvertimeMultiplier)
	}

	gross := regularPay.Add(overtimePay)
	tax := gross.Mul(flatDeductionRate)

	return roundBreakdown(Breakdown{
		RegularPay:  regularPay,
		OvertimePay: overtimePay,
		GrossPay:    gross,
		Deductions:  tax,
		NetPay:      gross.Sub(tax),
	})
}

func daysIn(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

func roundBreakdown(b Breakdown) Breakdown {
	b.RegularPay = b.RegularPay.Round(2)
	b.OvertimePay = b.OvertimePay.Round(2)
	b.GrossPay = b.GrossPay.Round(2)
	b.Deductions = b.Deductions.Round(2)
	b.NetPay = b.GrossPay.Sub(b.Deductions)
	return b
}
