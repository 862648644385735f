package models

import "time"

// Incidencia is a pickup incident report. Incidents are physically deleted
// when resolved, not flagged.
type Incidencia struct {
	ID          int       `json:"id"`
	RutaID      *int      `json:"ruta_id,omitempty"`
	ClienteID   *int      `json:"cliente_id,omitempty"`
	Descripcion string    `json:"descripcion"`
	Estado      string    `json:"estado"` // abierta, resuelta
	CreatedAt   time.Time `json:"created_at"`
}

type CreateIncidenciaRequest struct {
	RutaID      *int   `json:"ruta_id"`
	ClienteID   *int   `json:"cliente_id"`
	Descripcion string `json:"descripcion"`
}
