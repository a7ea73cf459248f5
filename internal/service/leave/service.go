package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	leave.BalanceRepository
	leave.RequestRepository
	employee.DirectoryRepository
	payrolls payroll.PayrollRepository
}

func NewService(
	tx database.TxManager,
	locks *lock.Keyed,
	balanceRepository leave.BalanceRepository,
	requestRepository leave.RequestRepository,
	directoryRepository employee.DirectoryRepository,
	payrollRepository payroll.PayrollRepository,
) *Service {
	return &Service{
		tx:                  tx,
		locks:               locks,
		BalanceRepository:   balanceRepository,
		RequestRepository:   requestRepository,
		DirectoryRepository: directoryRepository,
		payrolls:            payrollRepository,
	}
}

// Apply files a leave request and settles its cost immediately. Days covered
// by the balance are debited on filing; days beyond it become a salary
// deduction and turn the request into PAID leave, which the caller must
// confirm first.
func (s *Service) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.ApplyLeaveResponse, error) {
	if err := validator.Struct(req); err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	start, ok := validator.IsValidDate(req.StartDate)
	if !ok {
		return leave.ApplyLeaveResponse{}, validator.New("start_date", "must be a valid date")
	}
	end, ok := validator.IsValidDate(req.EndDate)
	if !ok {
		return leave.ApplyLeaveResponse{}, validator.New("end_date", "must be a valid date")
	}

	today := dateOf(time.Now().UTC())
	if start.Before(today) {
		return leave.ApplyLeaveResponse{}, validator.New("start_date", "must not be in the past")
	}
	if end.Before(start) {
		return leave.ApplyLeaveResponse{}, validator.New("end_date", "must not be before start_date")
	}

	emp, err := s.DirectoryRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	s.locks.Lock(req.EmployeeID)
	defer s.locks.Unlock(req.EmployeeID)

	duration := decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)

	balance, err := s.GetOrCreate(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	leaveType := leave.LeaveType(req.LeaveType)
	excess := duration.Sub(balance.RemainingDays)
	deduction := decimal.Zero
	remaining := balance.RemainingDays.Sub(duration)

	if excess.IsPositive() {
		// Beyond the balance the leave is unpaid in kind but paid out of
		// salary, so the request is rewritten as PAID.
		leaveType = leave.TypePaid
		deduction = payroll.DailyRate(emp.BasicPay).Mul(excess)
		remaining = decimal.Zero

		if !req.Confirm {
			return leave.ApplyLeaveResponse{
				RequiresConfirmation: true,
				DurationDays:         duration,
				ExcessDays:           excess,
				Deduction:            deduction,
			}, nil
		}
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.Create(ctx, leave.LeaveRequest{
			ID:           uuid.NewString(),
			EmployeeID:   req.EmployeeID,
			Type:         leaveType,
			StartDate:    start,
			EndDate:      end,
			DurationDays: duration,
			Status:       leave.StatusPending,
		})
		if err != nil {
			return err
		}

		if err := s.SetRemaining(ctx, req.EmployeeID, remaining); err != nil {
			return err
		}
		if deduction.IsPositive() {
			if _, err := s.payrolls.GetOrCreate(ctx, req.EmployeeID, emp.BasicPay); err != nil {
				return err
			}
			if _, err := s.payrolls.CreditDeduction(ctx, req.EmployeeID, deduction); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return leave.ApplyLeaveResponse{}, fmt.Errorf("failed to file leave request: %w", err)
	}

	resp := toResponse(created)
	return leave.ApplyLeaveResponse{
		Request:      &resp,
		DurationDays: duration,
		ExcessDays:   decimal.Max(excess, decimal.Zero),
		Deduction:    deduction,
	}, nil
}

// Decide settles a pending request. The balance was already debited on
// filing, so a rejection does not credit anything back.
func (s *Service) Decide(ctx context.Context, requestID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := validator.Struct(req); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lr, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.locks.Lock(lr.EmployeeID)
	defer s.locks.Unlock(lr.EmployeeID)

	if lr.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyDecided
	}

	status := leave.StatusRejected
	if req.Verdict == "APPROVE" {
		status = leave.StatusApproved
	}

	decidedAt := time.Now().UTC()
	if err := s.RequestRepository.Decide(ctx, requestID, status, decidedAt); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lr.Status = status
	lr.DecidedAt = &decidedAt
	return toResponse(lr), nil
}

func (s *Service) Snapshot(ctx context.Context, employeeID string) (leave.SnapshotResponse, error) {
	if _, err := s.DirectoryRepository.GetByID(ctx, employeeID); err != nil {
		return leave.SnapshotResponse{}, err
	}

	balance, err := s.GetOrCreate(ctx, employeeID)
	if err != nil {
		return leave.SnapshotResponse{}, err
	}

	consumed, err := s.SumApprovedDays(ctx, employeeID)
	if err != nil {
		return leave.SnapshotResponse{}, err
	}

	counts, err := s.CountByStatus(ctx, employeeID)
	if err != nil {
		return leave.SnapshotResponse{}, err
	}

	requests, err := s.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.SnapshotResponse{}, err
	}
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, toResponse(lr))
	}

	return leave.SnapshotResponse{
		EmployeeID:    employeeID,
		TotalDays:     decimal.NewFromInt(leave.AnnualLeaveDays),
		RemainingDays: balance.RemainingDays,
		ConsumedDays:  consumed,
		Pending:       counts[leave.StatusPending],
		Approved:      counts[leave.StatusApproved],
		Rejected:      counts[leave.StatusRejected],
		Requests:      responses,
	}, nil
}

func (s *Service) Pending(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(pending))
	for _, lr := range pending {
		responses = append(responses, toResponse(lr))
	}
	return responses, nil
}

func dateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func toResponse(lr leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		LeaveType:    lr.Type,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		DurationDays: lr.DurationDays,
		Status:       lr.Status,
		CreatedAt:    lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.DecidedAt != nil {
		decided := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decided
	}
	return resp
}
