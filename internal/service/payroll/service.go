package payroll

import (
	"context"
	"errors"

	"github.com/worklane/ledger-backend-go/internal/domain/attendance"
	"github.com/worklane/ledger-backend-go/internal/domain/employee"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/pkg/lock"
)

type Service struct {
	locks *lock.Keyed
	payroll.PayrollRepository
	employee.DirectoryRepository
	attendance.AttendanceRepository
}

func NewService(
	locks *lock.Keyed,
	payrollRepository payroll.PayrollRepository,
	directoryRepository employee.DirectoryRepository,
	attendanceRepository attendance.AttendanceRepository,
) *Service {
	return &Service{
		locks:                locks,
		PayrollRepository:    payrollRepository,
		DirectoryRepository:  directoryRepository,
		AttendanceRepository: attendanceRepository,
	}
}

func (s *Service) ApplyAllowance(ctx context.Context, employeeID string) (payroll.AccrualResponse, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.AccrualResponse{}, err
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	if _, err := s.GetOrCreate(ctx, employeeID, emp.BasicPay); err != nil {
		return payroll.AccrualResponse{}, err
	}

	accrual, err := s.SetAllowance(ctx, employeeID, payroll.AllowanceFor(emp.BasicPay))
	if err != nil {
		return payroll.AccrualResponse{}, err
	}

	return toResponse(accrual), nil
}

// ApplyOvertime pays the overtime hours recorded on the employee's most
// recent attendance day at the hourly overtime rate.
func (s *Service) ApplyOvertime(ctx context.Context, employeeID string) (payroll.ApplyOvertimeResponse, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.ApplyOvertimeResponse{}, err
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	latest, err := s.GetLatest(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return payroll.ApplyOvertimeResponse{}, payroll.ErrNoOvertimeRecorded
		}
		return payroll.ApplyOvertimeResponse{}, err
	}
	if latest.OvertimeHours == nil || !latest.OvertimeHours.IsPositive() {
		return payroll.ApplyOvertimeResponse{}, payroll.ErrNoOvertimeRecorded
	}

	if _, err := s.GetOrCreate(ctx, employeeID, emp.BasicPay); err != nil {
		return payroll.ApplyOvertimeResponse{}, err
	}

	rate := payroll.HourlyOvertimeRate(emp.BasicPay)
	accrual, err := s.CreditOvertimePay(ctx, employeeID, latest.OvertimeHours.Mul(rate))
	if err != nil {
		return payroll.ApplyOvertimeResponse{}, err
	}

	return payroll.ApplyOvertimeResponse{
		AccrualResponse: toResponse(accrual),
		OvertimeHours:   *latest.OvertimeHours,
		HourlyRate:      rate,
	}, nil
}

func (s *Service) NetPay(ctx context.Context, employeeID string) (payroll.AccrualResponse, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.AccrualResponse{}, err
	}

	if _, err := s.GetOrCreate(ctx, employeeID, emp.BasicPay); err != nil {
		return payroll.AccrualResponse{}, err
	}

	accrual, err := s.RecomputeNetPay(ctx, employeeID)
	if err != nil {
		return payroll.AccrualResponse{}, err
	}

	return toResponse(accrual), nil
}

func toResponse(a payroll.Accrual) payroll.AccrualResponse {
	return payroll.AccrualResponse{
		EmployeeID:  a.EmployeeID,
		BasicPay:    a.BasicPay,
		Allowance:   a.Allowance,
		Deduction:   a.Deduction,
		OvertimePay: a.OvertimePay,
		NetPay:      a.NetPay,
	}
}
