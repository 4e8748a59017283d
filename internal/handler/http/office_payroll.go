package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OfficePayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type officePayrollHandlerImpl struct {
	officePayrollService payroll.OfficePayrollService
}

func NewOfficePayrollHandler(officePayrollService payroll.OfficePayrollService) OfficePayrollHandler {
	return &officePayrollHandlerImpl{officePayrollService: officePayrollService}
}

func (h *officePayrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateOfficePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.officePayrollService.CreateOfficePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office payroll record created", result)
}

func (h *officePayrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.officePayrollService.GetOfficePayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *officePayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.officePayrollService.ListOfficePayrolls(r.Context(), parsePayrollFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, pageMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *officePayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateOfficePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.officePayrollService.UpdateOfficePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office payroll record updated", result)
}

func (h *officePayrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateOfficeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.officePayrollService.UpdateOfficePayrollStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office payroll status updated", result)
}

func (h *officePayrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.officePayrollService.DeleteOfficePayroll(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office payroll record deleted", nil)
}
