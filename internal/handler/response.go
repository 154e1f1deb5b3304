package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
)

// responder - общие методы ответа для всех хендлеров
type responder struct {
	logger *slog.Logger
}

func (h responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var cv *domain.ConstraintViolation

	switch {
	case errors.As(err, &ve):
		h.respondError(w, http.StatusBadRequest, "validation error", "", ve.Error())
	case errors.As(err, &cv):
		h.respondError(w, http.StatusConflict, "hierarchy constraint violation", cv.Rule, cv.Message)
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "", "")
	case errors.Is(err, domain.ErrPositionNotFound):
		h.respondError(w, http.StatusNotFound, "position not found", "", "")
	default:
		h.logger.ErrorContext(r.Context(), "internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "", "")
	}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, rule, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg, Rule: rule, Message: details}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// intParam читает необязательный целый параметр запроса
func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, raw, "must be an integer")
	}
	return &v, nil
}
