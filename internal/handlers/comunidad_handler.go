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

type ComunidadHandler struct {
	Service *services.ComunidadService
}

func NewComunidadHandler(s *services.ComunidadService) *ComunidadHandler {
	return &ComunidadHandler{Service: s}
}

func (h *ComunidadHandler) CreateComunidad(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComunidadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.Service.CreateComunidad(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *ComunidadHandler) GetComunidad(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Service.GetComunidad(r.Context(), id)
	if err != nil {
		http.Error(w, "Community not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// ListComunidades returns all communities for admins; community admins only
// see their own.
func (h *ComunidadHandler) ListComunidades(w http.ResponseWriter, r *http.Request) {
	var (
		comunidades []*models.Comunidad
		err         error
	)
	rol, _ := middleware.GetRolFromContext(r.Context())
	if rol == models.RolComunidad {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		comunidades, err = h.Service.ListByAdministrador(r.Context(), userID)
	} else {
		comunidades, err = h.Service.ListComunidades(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comunidades)
}

func (h *ComunidadHandler) UpdateComunidad(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateComunidadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.Service.UpdateComunidad(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *ComunidadHandler) DeleteComunidad(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteComunidad(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
