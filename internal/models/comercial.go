package models

import "time"

// ClienteCaptado tracks attribution of a client to a commercial agent.
// Its litros_recogidos counter is separate from the client's lifetime
// litros_aportados counter; both are rolled forward by the route batch
// completion routine but manual pickup edits only touch the lifetime one.
type ClienteCaptado struct {
	ID              int       `json:"id"`
	ComercialID     int       `json:"comercial_id"`
	ClienteID       *int      `json:"cliente_id,omitempty"`
	Nombre          string    `json:"nombre"`
	Telefono        string    `json:"telefono"`
	Direccion       string    `json:"direccion"`
	LitrosRecogidos float64   `json:"litros_recogidos"`
	FechaCaptacion  time.Time `json:"fecha_captacion"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Comision is the monthly commission accrued by a commercial agent for a
// captured client's collected volume.
type Comision struct {
	ID          int       `json:"id"`
	ComercialID int       `json:"comercial_id"`
	ClienteID   int       `json:"cliente_id"`
	Litros      float64   `json:"litros"`
	Importe     float64   `json:"importe"`
	Mes         string    `json:"mes"` // formato 2006-01
	Pagada      bool      `json:"pagada"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateClienteCaptadoRequest struct {
	ClienteID *int   `json:"cliente_id"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}
