package handlers

import (
	"encoding/json"
	"net/http"

	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type RankingHandler struct {
	Service *services.RankingService
}

func NewRankingHandler(s *services.RankingService) *RankingHandler {
	return &RankingHandler{Service: s}
}

func (h *RankingHandler) RankingGlobal(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.Service.RankingGlobal(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ranking)
}

func (h *RankingHandler) RankingDistrito(w http.ResponseWriter, r *http.Request) {
	distrito := mux.Vars(r)["distrito"]

	ranking, err := h.Service.RankingDistrito(r.Context(), distrito)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ranking)
}
