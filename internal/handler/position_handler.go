package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/service"
)

// PositionHandler обслуживает справочник должностей
type PositionHandler struct {
	responder
	posService service.PositionService
}

func NewPositionHandler(posService service.PositionService, logger *slog.Logger) *PositionHandler {
	return &PositionHandler{
		responder:  responder{logger: logger},
		posService: posService,
	}
}

func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.posService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.PositionResponse, 0, len(positions))
	for _, p := range positions {
		resp = append(resp, dto.PositionResponse{ID: p.ID, Title: p.Title, Level: p.Level})
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "", err.Error())
		return
	}

	pos, err := h.posService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.PositionResponse{ID: pos.ID, Title: pos.Title, Level: pos.Level})
}
