package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane/ledger-backend-go/internal/domain/attendance"
	"github.com/worklane/ledger-backend-go/internal/domain/employee"
	"github.com/worklane/ledger-backend-go/internal/domain/leave"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/pkg/lock"
	"github.com/worklane/ledger-backend-go/internal/pkg/validator"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memDirectory struct {
	employees map[string]employee.Employee
}

func (m *memDirectory) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type memAttendances struct {
	records map[string]attendance.Attendance
}

func attKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (m *memAttendances) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := attKey(att.EmployeeID, att.Date)
	if _, ok := m.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	m.records[key] = att
	return att, nil
}

func (m *memAttendances) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := m.records[attKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := att
	return &copied, nil
}

func (m *memAttendances) Complete(_ context.Context, att attendance.Attendance) error {
	key := attKey(att.EmployeeID, att.Date)
	existing, ok := m.records[key]
	if !ok || existing.Closed() {
		return attendance.ErrAttendanceNotFound
	}
	m.records[key] = att
	return nil
}

func (m *memAttendances) GetLatest(_ context.Context, employeeID string) (attendance.Attendance, error) {
	var latest attendance.Attendance
	found := false
	for _, att := range m.records {
		if att.EmployeeID != employeeID {
			continue
		}
		if !found || att.Date.After(latest.Date) {
			latest = att
			found = true
		}
	}
	if !found {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return latest, nil
}

func (m *memAttendances) ListByEmployee(_ context.Context, employeeID string) ([]attendance.Attendance, error) {
	var list []attendance.Attendance
	for _, att := range m.records {
		if att.EmployeeID == employeeID {
			list = append(list, att)
		}
	}
	return list, nil
}

func (m *memAttendances) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	var list []attendance.Attendance
	for _, att := range m.records {
		if att.Date.Equal(date) {
			list = append(list, att)
		}
	}
	return list, nil
}

type memBalances struct {
	balances map[string]decimal.Decimal
}

func (m *memBalances) GetOrCreate(_ context.Context, employeeID string) (leave.LeaveBalance, error) {
	days, ok := m.balances[employeeID]
	if !ok {
		days = decimal.NewFromInt(leave.AnnualLeaveDays)
		m.balances[employeeID] = days
	}
	return leave.LeaveBalance{EmployeeID: employeeID, RemainingDays: days}, nil
}

func (m *memBalances) SetRemaining(_ context.Context, employeeID string, days decimal.Decimal) error {
	if _, ok := m.balances[employeeID]; !ok {
		return leave.ErrBalanceNotFound
	}
	m.balances[employeeID] = days
	return nil
}

type memPayrolls struct {
	accruals map[string]payroll.Accrual
}

func (m *memPayrolls) GetOrCreate(_ context.Context, employeeID string, basicPay decimal.Decimal) (payroll.Accrual, error) {
	a, ok := m.accruals[employeeID]
	if !ok {
		a = payroll.Accrual{EmployeeID: employeeID, BasicPay: basicPay, NetPay: basicPay}
		m.accruals[employeeID] = a
	}
	return a, nil
}

func (m *memPayrolls) recompute(a payroll.Accrual) payroll.Accrual {
	a.NetPay = a.BasicPay.Add(a.Allowance).Add(a.OvertimePay).Sub(a.Deduction)
	return a
}

func (m *memPayrolls) SetAllowance(_ context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	a, ok := m.accruals[employeeID]
	if !ok {
		return payroll.Accrual{}, payroll.ErrAccrualNotFound
	}
	a.Allowance = amount
	a = m.recompute(a)
	m.accruals[employeeID] = a
	return a, nil
}

func (m *memPayrolls) CreditDeduction(_ context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	a, ok := m.accruals[employeeID]
	if !ok {
		return payroll.Accrual{}, payroll.ErrAccrualNotFound
	}
	a.Deduction = a.Deduction.Add(amount)
	a = m.recompute(a)
	m.accruals[employeeID] = a
	return a, nil
}

func (m *memPayrolls) CreditOvertimePay(_ context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	a, ok := m.accruals[employeeID]
	if !ok {
		return payroll.Accrual{}, payroll.ErrAccrualNotFound
	}
	a.OvertimePay = a.OvertimePay.Add(amount)
	a = m.recompute(a)
	m.accruals[employeeID] = a
	return a, nil
}

func (m *memPayrolls) RecomputeNetPay(_ context.Context, employeeID string) (payroll.Accrual, error) {
	a, ok := m.accruals[employeeID]
	if !ok {
		return payroll.Accrual{}, payroll.ErrAccrualNotFound
	}
	a = m.recompute(a)
	m.accruals[employeeID] = a
	return a, nil
}

type fixture struct {
	svc        *Service
	employeeID string
	atts       *memAttendances
	balances   *memBalances
	payrolls   *memPayrolls
}

func newFixture(balance string) fixture {
	employeeID := uuid.NewString()
	basicPay := decimal.NewFromInt(25000)

	directory := &memDirectory{employees: map[string]employee.Employee{
		employeeID: {ID: employeeID, Name: "Priya", Department: "Engineering", BasicPay: basicPay},
	}}
	atts := &memAttendances{records: make(map[string]attendance.Attendance)}
	balances := &memBalances{balances: map[string]decimal.Decimal{
		employeeID: decimal.RequireFromString(balance),
	}}
	payrolls := &memPayrolls{accruals: map[string]payroll.Accrual{
		employeeID: {EmployeeID: employeeID, BasicPay: basicPay, NetPay: basicPay},
	}}

	svc := NewService(fakeTxManager{}, lock.NewKeyed(), atts, directory, balances, payrolls)
	return fixture{svc: svc, employeeID: employeeID, atts: atts, balances: balances, payrolls: payrolls}
}

func TestClockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an open record", func(t *testing.T) {
		f := newFixture("2")

		resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T09:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, f.employeeID, resp.EmployeeID)
		assert.Equal(t, "2026-01-05", resp.Date)
		assert.Nil(t, resp.ClockOut)
	})

	t.Run("rejects a second punch on the same day", func(t *testing.T) {
		f := newFixture("2")

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T09:00:00Z",
		})
		require.NoError(t, err)

		_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T13:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("rejects unknown employee", func(t *testing.T) {
		f := newFixture("2")

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: uuid.NewString(),
			Timestamp:  "2026-01-05T09:00:00Z",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("rejects malformed employee id", func(t *testing.T) {
		f := newFixture("2")

		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "not-a-uuid"})
		var vErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &vErrs)
	})
}

func TestClockOut(t *testing.T) {
	ctx := context.Background()

	clockIn := func(t *testing.T, f fixture) {
		t.Helper()
		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T09:00:00Z",
		})
		require.NoError(t, err)
	}

	t.Run("requires a prior clock-in", func(t *testing.T) {
		f := newFixture("2")

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T17:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	})

	t.Run("rejects a timestamp before clock-in", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T08:00:00Z",
		})
		var vErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &vErrs)
	})

	t.Run("nine hours commits as overtime without confirmation", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T18:00:00Z",
		})
		require.NoError(t, err)
		assert.False(t, resp.RequiresConfirmation)
		assert.Equal(t, attendance.StatusOvertime, resp.Status)
		require.NotNil(t, resp.Attendance)
		require.NotNil(t, resp.Attendance.OvertimeHours)
		assert.True(t, decimal.NewFromInt(1).Equal(*resp.Attendance.OvertimeHours))

		// No leave or payroll impact for a full day.
		assert.True(t, decimal.NewFromInt(2).Equal(f.balances.balances[f.employeeID]))
		assert.True(t, f.payrolls.accruals[f.employeeID].Deduction.IsZero())
	})

	t.Run("short day without confirm previews and writes nothing", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T14:00:00Z",
		})
		require.NoError(t, err)
		assert.True(t, resp.RequiresConfirmation)
		assert.Equal(t, attendance.StatusHalfDay, resp.Status)
		assert.True(t, decimal.RequireFromString("0.5").Equal(resp.LeaveDebit))
		assert.Nil(t, resp.Attendance)

		// The record is still open and the balance untouched.
		att, err := f.atts.GetByEmployeeAndDate(ctx, f.employeeID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, att)
		assert.False(t, att.Closed())
		assert.True(t, decimal.NewFromInt(2).Equal(f.balances.balances[f.employeeID]))
	})

	t.Run("confirmed half day debits leave", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T14:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)
		assert.False(t, resp.RequiresConfirmation)
		assert.Equal(t, attendance.StatusHalfDay, resp.Status)

		assert.True(t, decimal.RequireFromString("1.5").Equal(f.balances.balances[f.employeeID]))
		assert.True(t, f.payrolls.accruals[f.employeeID].Deduction.IsZero())
	})

	t.Run("confirmed half day without balance deducts pay", func(t *testing.T) {
		f := newFixture("0")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T14:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(resp.Deduction))

		accrual := f.payrolls.accruals[f.employeeID]
		assert.True(t, decimal.NewFromInt(500).Equal(accrual.Deduction))
		assert.True(t, decimal.NewFromInt(24500).Equal(accrual.NetPay))
	})

	t.Run("confirmed absence debits a full day", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T11:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
		assert.True(t, decimal.NewFromInt(1).Equal(f.balances.balances[f.employeeID]))
	})

	t.Run("equal punch times commit as a zero-hour absence", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T09:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
		assert.True(t, resp.WorkedHours.IsZero())
		assert.True(t, decimal.NewFromInt(1).Equal(f.balances.balances[f.employeeID]))
	})

	t.Run("first punch-out provisions a balance row with the annual default", func(t *testing.T) {
		f := newFixture("2")
		delete(f.balances.balances, f.employeeID)
		clockIn(t, f)

		resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T14:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusHalfDay, resp.Status)
		assert.True(t, decimal.RequireFromString("41.5").Equal(f.balances.balances[f.employeeID]))
	})

	t.Run("deduction provisions a payroll row from directory pay", func(t *testing.T) {
		f := newFixture("0")
		delete(f.payrolls.accruals, f.employeeID)
		clockIn(t, f)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T14:00:00Z",
			Confirm:    true,
		})
		require.NoError(t, err)

		accrual, ok := f.payrolls.accruals[f.employeeID]
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(25000).Equal(accrual.BasicPay))
		assert.True(t, decimal.NewFromInt(500).Equal(accrual.Deduction))
		assert.True(t, decimal.NewFromInt(24500).Equal(accrual.NetPay))
	})

	t.Run("rejects a second clock-out", func(t *testing.T) {
		f := newFixture("2")
		clockIn(t, f)

		_, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T18:00:00Z",
		})
		require.NoError(t, err)

		_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{
			EmployeeID: f.employeeID,
			Timestamp:  "2026-01-05T19:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture("2")

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: f.employeeID,
		Timestamp:  "2026-01-05T09:00:00Z",
	})
	require.NoError(t, err)

	records, err := f.svc.History(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = f.svc.History(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
