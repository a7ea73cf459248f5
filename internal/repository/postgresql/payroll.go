package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = "employee_id, basic_pay, allowance, deduction, overtime_pay, net_pay"

func (r *payrollRepository) GetOrCreate(ctx context.Context, employeeID string, basicPay decimal.Decimal) (payroll.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op DO UPDATE makes the insert return the existing row untouched.
	query := `
		INSERT INTO payrolls (employee_id, basic_pay, net_pay)
		VALUES ($1, $2, $2)
		ON CONFLICT (employee_id) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING ` + payrollColumns

	var a payroll.Accrual
	err := q.QueryRow(ctx, query, employeeID, basicPay).Scan(
		&a.EmployeeID, &a.BasicPay, &a.Allowance, &a.Deduction, &a.OvertimePay, &a.NetPay,
	)
	if err != nil {
		return payroll.Accrual{}, fmt.Errorf("failed to get or create payroll accrual: %w", err)
	}

	return a, nil
}

func (r *payrollRepository) SetAllowance(ctx context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET allowance = $1,
			net_pay = basic_pay + $1 + overtime_pay - deduction,
			updated_at = NOW()
		WHERE employee_id = $2
		RETURNING ` + payrollColumns

	return r.mutate(ctx, q, query, amount, employeeID)
}

func (r *payrollRepository) CreditDeduction(ctx context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET deduction = deduction + $1,
			net_pay = basic_pay + allowance + overtime_pay - (deduction + $1),
			updated_at = NOW()
		WHERE employee_id = $2
		RETURNING ` + payrollColumns

	return r.mutate(ctx, q, query, amount, employeeID)
}

func (r *payrollRepository) CreditOvertimePay(ctx context.Context, employeeID string, amount decimal.Decimal) (payroll.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET overtime_pay = overtime_pay + $1,
			net_pay = basic_pay + allowance + (overtime_pay + $1) - deduction,
			updated_at = NOW()
		WHERE employee_id = $2
		RETURNING ` + payrollColumns

	return r.mutate(ctx, q, query, amount, employeeID)
}

func (r *payrollRepository) RecomputeNetPay(ctx context.Context, employeeID string) (payroll.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET net_pay = basic_pay + allowance + overtime_pay - deduction,
			updated_at = NOW()
		WHERE employee_id = $1
		RETURNING ` + payrollColumns

	var a payroll.Accrual
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&a.EmployeeID, &a.BasicPay, &a.Allowance, &a.Deduction, &a.OvertimePay, &a.NetPay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Accrual{}, payroll.ErrAccrualNotFound
		}
		return payroll.Accrual{}, fmt.Errorf("failed to recompute net pay: %w", err)
	}

	return a, nil
}

func (r *payrollRepository) mutate(ctx context.Context, q database.Querier, query string, amount decimal.Decimal, employeeID string) (payroll.Accrual, error) {
	var a payroll.Accrual
	err := q.QueryRow(ctx, query, amount, employeeID).Scan(
		&a.EmployeeID, &a.BasicPay, &a.Allowance, &a.Deduction, &a.OvertimePay, &a.NetPay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Accrual{}, payroll.ErrAccrualNotFound
		}
		return payroll.Accrual{}, fmt.Errorf("failed to update payroll accrual: %w", err)
	}

	return a, nil
}
