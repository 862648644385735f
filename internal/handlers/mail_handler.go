package handlers

import (
	"encoding/json"
	"net/http"

	"oleo-backend/internal/mailer"

	"github.com/sirupsen/logrus"
)

type MailHandler struct {
	Mailer *mailer.Mailer
}

func NewMailHandler(m *mailer.Mailer) *MailHandler {
	return &MailHandler{Mailer: m}
}

// Contacto handles the public contact form.
func (h *MailHandler) Contacto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nombre  string `json:"nombre"`
		Email   string `json:"email"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Mensaje == "" {
		http.Error(w, "email and mensaje are required", http.StatusBadRequest)
		return
	}

	if err := h.Mailer.SendContacto(r.Context(), req.Nombre, req.Email, req.Mensaje); err != nil {
		logrus.Errorf("[Mail] contact form send failed: %v", err)
		writeMailError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Inscripcion handles the public enrolment form.
func (h *MailHandler) Inscripcion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nombre    string `json:"nombre"`
		Email     string `json:"email"`
		Direccion string `json:"direccion"`
		Telefono  string `json:"telefono"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Nombre == "" {
		http.Error(w, "nombre and email are required", http.StatusBadRequest)
		return
	}

	if err := h.Mailer.SendInscripcion(r.Context(), req.Nombre, req.Email, req.Direccion, req.Telefono); err != nil {
		logrus.Errorf("[Mail] enrolment form send failed: %v", err)
		writeMailError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeMailError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
