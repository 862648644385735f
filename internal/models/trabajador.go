package models

import "time"

// Trabajador is a collection worker. Soft-deleted via activo.
type Trabajador struct {
	ID        int       `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellidos string    `json:"apellidos"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Turno is a worker shift. Unlike most entities, shifts are physically
// deleted when removed.
type Turno struct {
	ID           int       `json:"id"`
	TrabajadorID int       `json:"trabajador_id"`
	Fecha        time.Time `json:"fecha"`
	HoraInicio   string    `json:"hora_inicio"`
	HoraFin      string    `json:"hora_fin"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateTrabajadorRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
}

type UpdateTrabajadorRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
}

type CreateTurnoRequest struct {
	TrabajadorID int       `json:"trabajador_id"`
	Fecha        time.Time `json:"fecha"`
	HoraInicio   string    `json:"hora_inicio"`
	HoraFin      string    `json:"hora_fin"`
}
