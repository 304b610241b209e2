package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Simulate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func paymentFilter(r *http.Request) payroll.PaymentFilter {
	filter := payroll.PaymentFilter{
		EmployeID: optionalQuery(r, "employeId"),
		Mois:      optionalQuery(r, "mois"),
		Statut:    optionalQuery(r, "statut"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// Create implements PayrollHandler.
func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePayment decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	created, err := h.payrollService.CreatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salaire enregistré", created)
}

// Simulate implements PayrollHandler.
func (h *payrollHandlerImpl) Simulate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SimulatePayment decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	simulation, err := h.payrollService.Simulate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, simulation)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.payrollService.ListPayments(r.Context(), paymentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Mine implements PayrollHandler.
func (h *payrollHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.payrollService.MyPayments(r.Context(), paymentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payrollService.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payment)
}

// Update implements PayrollHandler.
func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePayment decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.payrollService.UpdatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaire mis à jour", updated)
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paid, err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaire marqué comme payé", paid)
}

// Delete implements PayrollHandler.
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaire supprimé", nil)
}

// Payslip implements PayrollHandler.
func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	filename, pdf, err := h.payrollService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/pdf", filename, pdf)
}

// Export implements PayrollHandler.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.payrollService.ExportPayments(r.Context(), paymentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "salaires-" + time.Now().Format("20060102") + ".xlsx"
	response.File(w, xlsxContentType, filename, workbook)
}
