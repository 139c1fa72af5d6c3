// Package api exposes the todo service over HTTP: row CRUD plus a
// websocket change-notification feed. The store is injected at
// construction; handlers translate wire payloads to store calls and map
// store failures to error-shaped responses.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// Server routes todo requests to an injected Store.
type Server struct {
	store  types.Store
	router *mux.Router
}

// NewServer builds the HTTP surface over the given store.
func NewServer(store types.Store) *Server {
	s := &Server{store: store}

	r := mux.NewRouter()
	r.Use(logMiddleware)
	r.Methods(http.MethodGet).Path("/todos").HandlerFunc(s.listTodos)
	r.Methods(http.MethodPost).Path("/todos").HandlerFunc(s.createTodo)
	r.Methods(http.MethodGet).Path("/todos/watch").HandlerFunc(s.watchTodos)
	r.Methods(http.MethodPut).Path("/todos/{id}").HandlerFunc(s.updateTodo)
	r.Methods(http.MethodDelete).Path("/todos/{id}").HandlerFunc(s.deleteTodo)
	s.router = r

	return s
}

// ServeHTTP makes the server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		slog.Info("handled", "method", r.Method, "url", r.URL, "duration", m.Duration, "status", m.Code)
	})
}

// GET /todos
func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// POST /todos
func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if !types.ValidContent(input.Content) {
		writeError(w, http.StatusBadRequest, errors.New("content is required"))
		return
	}

	todo, err := s.store.Create(r.Context(), input.Content)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// PUT /todos/{id}
func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update types.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if update.IsZero() {
		writeError(w, http.StatusBadRequest, errors.New("id and at least one field are required"))
		return
	}

	if err := s.store.Update(r.Context(), id, update); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// DELETE /todos/{id}
//
// Deleting an id that no longer exists succeeds: the row is absent either
// way, so the operation is idempotent at this surface.
func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(r.Context(), id); err != nil && !errors.Is(err, types.ErrNotFound) {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps store errors to HTTP statuses. Validation failures are
// client errors, a missing row is 404, and anything else is a persistence
// failure reported as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrEmptyContent),
		errors.Is(err, types.ErrEmptyID),
		errors.Is(err, types.ErrEmptyUpdate):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
