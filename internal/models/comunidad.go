package models

import "time"

// Comunidad is a residential community managed by a community administrator.
type Comunidad struct {
	ID              int       `json:"id"`
	Nombre          string    `json:"nombre"`
	Direccion       string    `json:"direccion"`
	Distrito        string    `json:"distrito"`
	Barrio          string    `json:"barrio"`
	NumViviendas    int       `json:"num_viviendas"`
	AdministradorID *int      `json:"administrador_id,omitempty"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateComunidadRequest struct {
	Nombre          string `json:"nombre"`
	Direccion       string `json:"direccion"`
	Distrito        string `json:"distrito"`
	Barrio          string `json:"barrio"`
	NumViviendas    int    `json:"num_viviendas"`
	AdministradorID *int   `json:"administrador_id"`
}

type UpdateComunidadRequest struct {
	Nombre          string `json:"nombre"`
	Direccion       string `json:"direccion"`
	Distrito        string `json:"distrito"`
	Barrio          string `json:"barrio"`
	NumViviendas    int    `json:"num_viviendas"`
	AdministradorID *int   `json:"administrador_id"`
}
