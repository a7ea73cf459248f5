package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ApplyAllowance(w http.ResponseWriter, r *http.Request)
	ApplyOvertime(w http.ResponseWriter, r *http.Request)
	NetPay(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// ApplyAllowance implements PayrollHandler.
func (h *payrollHandlerImpl) ApplyAllowance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.payrollService.ApplyAllowance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allowance applied", result)
}

// ApplyOvertime implements PayrollHandler.
func (h *payrollHandlerImpl) ApplyOvertime(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.payrollService.ApplyOvertime(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime paid out", result)
}

// NetPay implements PayrollHandler.
func (h *payrollHandlerImpl) NetPay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.payrollService.NetPay(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
