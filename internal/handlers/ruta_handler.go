package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type RutaHandler struct {
	Service         *services.RutaService
	RecogidaService *services.RecogidaService
	ImpactoService  *services.ImpactoService
}

func NewRutaHandler(s *services.RutaService, recogidaService *services.RecogidaService, impactoService *services.ImpactoService) *RutaHandler {
	return &RutaHandler{Service: s, RecogidaService: recogidaService, ImpactoService: impactoService}
}

func (h *RutaHandler) CreateRuta(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRutaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ruta, err := h.Service.CreateRuta(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ruta)
}

func (h *RutaHandler) GetRuta(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ruta, err := h.Service.GetRuta(r.Context(), id)
	if err != nil {
		http.Error(w, "Route not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ruta)
}

func (h *RutaHandler) ListRutas(w http.ResponseWriter, r *http.Request) {
	rutas, err := h.Service.ListRutas(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rutas)
}

func (h *RutaHandler) UpdateRuta(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateRutaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ruta, err := h.Service.UpdateRuta(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ruta)
}

func (h *RutaHandler) DeleteRuta(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteRuta(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RutaHandler) AddCliente(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AddRutaClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.AddCliente(r.Context(), id, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *RutaHandler) SetLitros(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.SetLitrosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetLitros(r.Context(), id, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *RutaHandler) RemoveCliente(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])
	clienteID, _ := strconv.Atoi(vars["clienteId"])

	if err := h.Service.RemoveCliente(r.Context(), id, clienteID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompletarRuta runs the batch completion for a route and pushes the new
// impact aggregate to the live stream.
func (h *RutaHandler) CompletarRuta(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.RecogidaService.CompletarRuta(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrRutaNoEncontrada):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, repositories.ErrVersionConflict):
			http.Error(w, "Route completion already in progress", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if h.ImpactoService != nil {
		h.ImpactoService.Publicar(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
