package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
)

// EmployeeHandler обслуживает запросы к сотрудникам
type EmployeeHandler struct {
	responder
	empService     service.EmployeeService
	queryLimit     int
	hierarchyLimit int
}

// NewEmployeeHandler создаёт хендлер; лимиты применяются, если клиент их не передал
func NewEmployeeHandler(empService service.EmployeeService, queryLimit, hierarchyLimit int, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:      responder{logger: logger},
		empService:     empService,
		queryLimit:     queryLimit,
		hierarchyLimit: hierarchyLimit,
	}
}

// List - GET /employees?filter=field:value&sort=-field&limit=N
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	req, err := dto.NewListEmployeesRequest(q["filter"], q["sort"], limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	effective := h.queryLimit
	if req.Limit != nil {
		effective = *req.Limit
	}

	filters, sorts := req.Clauses()
	views, err := h.empService.Query(r.Context(), filters, sorts, effective)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.EmployeeResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toEmployeeResponse(&views[i]))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	view, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toEmployeeResponse(view))
}

// Hierarchy - GET /employees/{id}/hierarchy?limit=N
func (h *EmployeeHandler) Hierarchy(w http.ResponseWriter, r *http.Request, id int64) {
	limit, err := intParam(r, "limit")
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	query := dto.HierarchyQuery{Limit: h.hierarchyLimit}
	if limit != nil {
		query.Limit = *limit
	}
	if err := dto.Validate(&query); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	root, found, err := h.empService.Hierarchy(r.Context(), id, query.Limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, "employee not found", "", "")
		return
	}

	h.respondJSON(w, http.StatusOK, toHierarchyResponse(root))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "", err.Error())
		return
	}

	view, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(view))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "", err.Error())
		return
	}

	view, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(view))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeResponse(v *domain.EmployeeView) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:          v.ID,
		LastName:    v.LastName,
		FirstName:   v.FirstName,
		Patronymic:  v.Patronymic,
		FullName:    v.FullName,
		PositionID:  v.PositionID,
		Position:    v.PositionTitle,
		HireDate:    v.HireDate.Format(dto.DateLayout),
		Salary:      v.Salary.StringFixed(2),
		ManagerID:   v.ManagerID,
		ManagerName: v.ManagerName,
	}
}

func toHierarchyResponse(n *domain.HierarchyNode) dto.HierarchyResponse {
	resp := dto.HierarchyResponse{
		ID:           n.ID,
		FullName:     n.FullName,
		Position:     n.PositionTitle,
		ManagerID:    n.ManagerID,
		Subordinates: make([]dto.HierarchyResponse, 0, len(n.Subordinates)),
	}
	for _, sub := range n.Subordinates {
		resp.Subordinates = append(resp.Subordinates, toHierarchyResponse(sub))
	}
	return resp
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", raw, "must be a positive integer")
	}
	return id, nil
}
