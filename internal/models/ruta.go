package models

import "time"

// Ruta is a planned or completed multi-client collection run. Routes are
// never hard-deleted; lifecycle is the activo/completada pair. The version
// column guards concurrent batch reconciliations.
type Ruta struct {
	ID              int           `json:"id"`
	Nombre          string        `json:"nombre"`
	Distrito        string        `json:"distrito"`
	Barrios         []string      `json:"barrios"`
	Fecha           *time.Time    `json:"fecha,omitempty"`
	Completada      bool          `json:"completada"`
	LitrosTotales   float64       `json:"litros_totales"`
	FechaCompletada *time.Time    `json:"fecha_completada,omitempty"`
	Version         int           `json:"version"`
	Activo          bool          `json:"activo"`
	Clientes        []RutaCliente `json:"clientes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// RutaCliente is one ordered stop on a route with the liters recorded for
// that client during the run.
type RutaCliente struct {
	RutaID    int     `json:"ruta_id"`
	ClienteID int     `json:"cliente_id"`
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	Litros    float64 `json:"litros"`
	Posicion  int     `json:"posicion"`
}

type CreateRutaRequest struct {
	Nombre   string     `json:"nombre"`
	Distrito string     `json:"distrito"`
	Barrios  []string   `json:"barrios"`
	Fecha    *time.Time `json:"fecha"`
}

type UpdateRutaRequest struct {
	Nombre   string     `json:"nombre"`
	Distrito string     `json:"distrito"`
	Barrios  []string   `json:"barrios"`
	Fecha    *time.Time `json:"fecha"`
}

type AddRutaClienteRequest struct {
	ClienteID int     `json:"cliente_id"`
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	Litros    float64 `json:"litros"`
	Posicion  int     `json:"posicion"`
}

type SetLitrosRequest struct {
	ClienteID int     `json:"cliente_id"`
	Litros    float64 `json:"litros"`
}
