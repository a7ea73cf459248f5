package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/worklane/ledger-backend-go/internal/domain/attendance"
	"github.com/worklane/ledger-backend-go/internal/domain/employee"
	"github.com/worklane/ledger-backend-go/internal/domain/leave"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/pkg/database"
	"github.com/worklane/ledger-backend-go/internal/pkg/lock"
	"github.com/worklane/ledger-backend-go/internal/pkg/validator"
)

type Service struct {
	tx    database.TxManager
	locks *lock.Keyed
	attendance.AttendanceRepository
	employee.DirectoryRepository
	balances leave.BalanceRepository
	payrolls payroll.PayrollRepository
}

func NewService(
	tx database.TxManager,
	locks *lock.Keyed,
	attendanceRepository attendance.AttendanceRepository,
	directoryRepository employee.DirectoryRepository,
	balanceRepository leave.BalanceRepository,
	payrollRepository payroll.PayrollRepository,
) *Service {
	return &Service{
		tx:                   tx,
		locks:                locks,
		AttendanceRepository: attendanceRepository,
		DirectoryRepository:  directoryRepository,
		balances:             balanceRepository,
		payrolls:             payrollRepository,
	}
}

func (s *Service) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := validator.Struct(req); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ts, err := parseTimestamp(req.Timestamp)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.locks.Lock(req.EmployeeID)
	defer s.locks.Unlock(req.EmployeeID)

	existing, err := s.GetByEmployeeAndDate(ctx, req.EmployeeID, dateOf(ts))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	created, err := s.Create(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       dateOf(ts),
		ClockIn:    ts,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

func (s *Service) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := validator.Struct(req); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	ts, err := parseTimestamp(req.Timestamp)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	emp, err := s.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	s.locks.Lock(req.EmployeeID)
	defer s.locks.Unlock(req.EmployeeID)

	att, err := s.GetByEmployeeAndDate(ctx, req.EmployeeID, dateOf(ts))
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	if att == nil {
		return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
	}
	if att.Closed() {
		return attendance.ClockOutResponse{}, attendance.ErrAlreadyClockedOut
	}
	if ts.Before(att.ClockIn) {
		return attendance.ClockOutResponse{}, validator.New("timestamp", "must not be before clock-in time")
	}

	workedHours := decimal.NewFromFloat(ts.Sub(att.ClockIn).Hours()).Round(2)
	status, overtime := Classify(workedHours)

	balance, err := s.balances.GetOrCreate(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	consequence := ConsequenceOf(status, balance.RemainingDays, emp.BasicPay)
	if consequence.NeedsConfirmation && !req.Confirm {
		// Nothing is written until the caller confirms the shortfall.
		return attendance.ClockOutResponse{
			RequiresConfirmation: true,
			Status:               status,
			WorkedHours:          workedHours,
			LeaveDebit:           consequence.LeaveDebit,
			Deduction:            consequence.Deduction,
		}, nil
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		att.ClockOut = &ts
		att.WorkedHours = &workedHours
		att.OvertimeHours = &overtime
		att.Status = status
		if err := s.Complete(ctx, *att); err != nil {
			return err
		}

		if consequence.LeaveDebit.IsPositive() {
			remaining := balance.RemainingDays.Sub(consequence.LeaveDebit)
			if err := s.balances.SetRemaining(ctx, req.EmployeeID, remaining); err != nil {
				return err
			}
		}
		if consequence.Deduction.IsPositive() {
			if _, err := s.payrolls.GetOrCreate(ctx, req.EmployeeID, emp.BasicPay); err != nil {
				return err
			}
			if _, err := s.payrolls.CreditDeduction(ctx, req.EmployeeID, consequence.Deduction); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to commit clock-out: %w", err)
	}

	resp := toResponse(*att)
	return attendance.ClockOutResponse{
		Attendance:  &resp,
		Status:      status,
		WorkedHours: workedHours,
		LeaveDebit:  consequence.LeaveDebit,
		Deduction:   consequence.Deduction,
	}, nil
}

func (s *Service) History(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if _, err := s.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func (s *Service) TodayLog(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := s.ListByDate(ctx, dateOf(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, validator.New("timestamp", "must be a valid RFC 3339 timestamp")
	}
	return ts.UTC(), nil
}

func dateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format("2006-01-02"),
		ClockIn:       a.ClockIn.Format(time.RFC3339),
		WorkedHours:   a.WorkedHours,
		OvertimeHours: a.OvertimeHours,
		Status:        a.Status,
	}
	if a.ClockOut != nil {
		out := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, toResponse(a))
	}
	return responses
}
