package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/advance"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByStatus(w http.ResponseWriter, r *http.Request)
	RecalculateRates(w http.ResponseWriter, r *http.Request)

	// Emergency advances
	GetActiveAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	CreateAdvance(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	ledgerService   advance.LedgerService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, ledgerService advance.LedgerService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		ledgerService:   ledgerService,
	}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		response.BadRequest(w, "Query parameter 'status' is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployeesByStatus(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) RecalculateRates(w http.ResponseWriter, r *http.Request) {
	var req employee.RecalculateRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.RecalculateRates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee rates updated", result)
}

func (h *employeeHandlerImpl) GetActiveAdvance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.GetActivePair(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.ListAdvances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req advance.CreatePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.ledgerService.CreatePair(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Emergency advance issued", result)
}
