package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"oleo-backend/internal/services"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) CertificadoImpacto(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := strconv.Atoi(mux.Vars(r)["clienteId"])

	pdf, err := h.Service.CertificadoImpacto(r.Context(), clienteID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=certificado_%d.pdf", clienteID))
	w.Write(pdf)
}

func (h *ReportHandler) ResumenDistritos(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.ResumenDistritos(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=resumen_distritos.pdf")
	w.Write(pdf)
}
