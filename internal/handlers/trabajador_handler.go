package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"oleo-backend/internal/models"
	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type TrabajadorHandler struct {
	Service *services.TrabajadorService
}

func NewTrabajadorHandler(s *services.TrabajadorService) *TrabajadorHandler {
	return &TrabajadorHandler{Service: s}
}

func (h *TrabajadorHandler) CreateTrabajador(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTrabajadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.Service.CreateTrabajador(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func (h *TrabajadorHandler) GetTrabajador(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	t, err := h.Service.GetTrabajador(r.Context(), id)
	if err != nil {
		http.Error(w, "Worker not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func (h *TrabajadorHandler) ListTrabajadores(w http.ResponseWriter, r *http.Request) {
	trabajadores, err := h.Service.ListTrabajadores(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trabajadores)
}

func (h *TrabajadorHandler) UpdateTrabajador(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateTrabajadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.Service.UpdateTrabajador(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func (h *TrabajadorHandler) DeleteTrabajador(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteTrabajador(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TrabajadorHandler) CreateTurno(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTurnoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.Service.CreateTurno(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

// ListTurnos filters by trabajador_id or by a desde/hasta date range.
func (h *TrabajadorHandler) ListTurnos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if trabajadorID, err := strconv.Atoi(q.Get("trabajador_id")); err == nil {
		turnos, err := h.Service.ListTurnos(r.Context(), trabajadorID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(turnos)
		return
	}

	desde, err1 := time.Parse("2006-01-02", q.Get("desde"))
	hasta, err2 := time.Parse("2006-01-02", q.Get("hasta"))
	if err1 != nil || err2 != nil {
		http.Error(w, "trabajador_id or desde/hasta parameters are required", http.StatusBadRequest)
		return
	}

	turnos, err := h.Service.ListTurnosRango(r.Context(), desde, hasta)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(turnos)
}

func (h *TrabajadorHandler) DeleteTurno(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteTurno(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
