package handlers

import (
	"encoding/json"
	"net/http"

	"oleo-backend/internal/services"
)

type ImpactoHandler struct {
	Service *services.ImpactoService
}

func NewImpactoHandler(s *services.ImpactoService) *ImpactoHandler {
	return &ImpactoHandler{Service: s}
}

// Resumen is public; the landing page polls it and the websocket stream
// pushes the same shape.
func (h *ImpactoHandler) Resumen(w http.ResponseWriter, r *http.Request) {
	resumen, err := h.Service.Resumen(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumen)
}
