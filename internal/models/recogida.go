package models

import "time"

// Pickup record states. The boolean Completada mirrors EstadoRecogida for
// legacy readers; writes keep both in sync.
const (
	EstadoPendiente  = "pendiente"
	EstadoCompletada = "completada"
)

// Recogida is one collection event for one client.
type Recogida struct {
	ID              int        `json:"id"`
	RutaID          int        `json:"ruta_id"`
	ClienteID       int        `json:"cliente_id"`
	LitrosRecogidos float64    `json:"litros_recogidos"`
	Distrito        string     `json:"distrito"`
	Direccion       string     `json:"direccion"`
	Fecha           time.Time  `json:"fecha"`
	EstadoRecogida  string     `json:"estado_recogida"`
	Completada      bool       `json:"completada"`
	FechaCompletada *time.Time `json:"fecha_completada,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// RutaClientes is the route's client snapshot when the record was
	// loaded with its route; used by the per-client filter.
	RutaClientes []RutaCliente `json:"ruta_clientes,omitempty"`
}

type CreateRecogidaRequest struct {
	RutaID          int     `json:"ruta_id"`
	ClienteID       int     `json:"cliente_id"`
	LitrosRecogidos float64 `json:"litros_recogidos"`
	Distrito        string  `json:"distrito"`
	Direccion       string  `json:"direccion"`
}

type UpdateRecogidaRequest struct {
	LitrosRecogidos float64 `json:"litros_recogidos"`
	EstadoRecogida  string  `json:"estado_recogida"`
}
