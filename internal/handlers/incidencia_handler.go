package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"oleo-backend/internal/models"
	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type IncidenciaHandler struct {
	Service *services.IncidenciaService
}

func NewIncidenciaHandler(s *services.IncidenciaService) *IncidenciaHandler {
	return &IncidenciaHandler{Service: s}
}

func (h *IncidenciaHandler) CreateIncidencia(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIncidenciaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	i, err := h.Service.CreateIncidencia(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(i)
}

func (h *IncidenciaHandler) ListIncidencias(w http.ResponseWriter, r *http.Request) {
	incidencias, err := h.Service.ListIncidencias(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(incidencias)
}

func (h *IncidenciaHandler) ResolverIncidencia(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.ResolverIncidencia(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *IncidenciaHandler) DeleteIncidencia(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteIncidencia(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
