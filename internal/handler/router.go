package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-directory/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
	posHandler *PositionHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, posHandler *PositionHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
		posHandler: posHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/employees", r.employeesRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/positions", r.positionsRouter)
	r.mux.HandleFunc("/positions/", r.positionsRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware; RequestID снаружи, чтобы id попал в лог запроса
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/employees"), "/")

	if path == "" {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.List(w, req)
		case http.MethodPost:
			r.empHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	// Разбираем путь: {id} или {id}/hierarchy
	parts := strings.Split(path, "/")
	id, err := parseID(parts[0])
	if err != nil {
		r.empHandler.handleServiceError(w, req, err)
		return
	}

	if len(parts) == 1 {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req, id)
		case http.MethodPatch:
			r.empHandler.Update(w, req, id)
		case http.MethodDelete:
			r.empHandler.Delete(w, req, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "hierarchy" {
		if req.Method == http.MethodGet {
			r.empHandler.Hierarchy(w, req, id)
			return
		}
		methodNotAllowed(w)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

func (r *Router) positionsRouter(w http.ResponseWriter, req *http.Request) {
	if strings.Trim(strings.TrimPrefix(req.URL.Path, "/positions"), "/") != "" {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.posHandler.List(w, req)
	case http.MethodPost:
		r.posHandler.Create(w, req)
	default:
		methodNotAllowed(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}
