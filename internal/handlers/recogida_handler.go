package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"oleo-backend/internal/models"
	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type RecogidaHandler struct {
	Service        *services.RecogidaService
	ImpactoService *services.ImpactoService
}

func NewRecogidaHandler(s *services.RecogidaService, impactoService *services.ImpactoService) *RecogidaHandler {
	return &RecogidaHandler{Service: s, ImpactoService: impactoService}
}

func (h *RecogidaHandler) CreateRecogida(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecogidaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.Service.CreateRecogida(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// ListRecogidas supports optional ruta_id / cliente_id filters.
func (h *RecogidaHandler) ListRecogidas(w http.ResponseWriter, r *http.Request) {
	var (
		recogidas []models.Recogida
		err       error
	)
	switch {
	case r.URL.Query().Get("ruta_id") != "":
		rutaID, _ := strconv.Atoi(r.URL.Query().Get("ruta_id"))
		recogidas, err = h.Service.ListByRuta(r.Context(), rutaID)
	case r.URL.Query().Get("cliente_id") != "":
		clienteID, _ := strconv.Atoi(r.URL.Query().Get("cliente_id"))
		recogidas, err = h.Service.ListByCliente(r.Context(), clienteID)
	default:
		recogidas, err = h.Service.ListRecogidas(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recogidas)
}

func (h *RecogidaHandler) UpdateRecogida(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateRecogidaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.Service.UpdateRecogida(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.ImpactoService != nil {
		h.ImpactoService.Publicar(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *RecogidaHandler) DeleteRecogida(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteRecogida(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.ImpactoService != nil {
		h.ImpactoService.Publicar(r.Context())
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats aggregates the loaded pickup set into dashboard figures.
func (h *RecogidaHandler) Stats(w http.ResponseWriter, r *http.Request) {
	recogidas, err := h.Service.ListRecogidas(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats := map[string]interface{}{
		"litros_totales":       services.TotalLitros(recogidas),
		"litros_por_distrito":  services.LitrosPorDistrito(recogidas),
		"media_por_completada": services.MediaLitrosRecogidaCompletada(recogidas),
		"media_mensual":        services.MediaLitrosPorPeriodo(recogidas),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
