package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"oleo-backend/internal/middleware"
	"oleo-backend/internal/models"
	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type ComercialHandler struct {
	Service *services.ComercialService
}

func NewComercialHandler(s *services.ComercialService) *ComercialHandler {
	return &ComercialHandler{Service: s}
}

// comercialID resolves which agent's data to operate on: admins may pass
// ?comercial_id, agents always act as themselves.
func comercialID(r *http.Request) int {
	rol, _ := middleware.GetRolFromContext(r.Context())
	if rol == models.RolAdmin {
		if id, err := strconv.Atoi(r.URL.Query().Get("comercial_id")); err == nil {
			return id
		}
	}
	id, _ := middleware.GetUserIDFromContext(r.Context())
	return id
}

func (h *ComercialHandler) CreateCaptado(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClienteCaptadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.Service.CreateCaptado(r.Context(), comercialID(r), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *ComercialHandler) ListCaptados(w http.ResponseWriter, r *http.Request) {
	captados, err := h.Service.ListCaptados(r.Context(), comercialID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(captados)
}

func (h *ComercialHandler) DeleteCaptado(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCaptado(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ComercialHandler) ListComisiones(w http.ResponseWriter, r *http.Request) {
	comisiones, err := h.Service.ListComisiones(r.Context(), comercialID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comisiones)
}

func (h *ComercialHandler) MarkComisionPagada(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.MarkComisionPagada(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
