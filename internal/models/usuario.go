package models

import "time"

// Roles recognized by the route guards.
const (
	RolAdmin     = "admin"
	RolComercial = "comercial"
	RolComunidad = "comunidad"
	RolCliente   = "cliente"
)

type Usuario struct {
	ID              int       `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellidos       string    `json:"apellidos"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Rol             string    `json:"rol"`
	Telefono        string    `json:"telefono"`
	Distrito        string    `json:"distrito"`
	Barrio          string    `json:"barrio"`
	Direccion       string    `json:"direccion"`
	Tipo            string    `json:"tipo"`
	LitrosAportados float64   `json:"litros_aportados"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Telefono  string `json:"telefono"`
	Distrito  string `json:"distrito"`
	Barrio    string `json:"barrio"`
	Direccion string `json:"direccion"`
	Tipo      string `json:"tipo"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string   `json:"token,omitempty"`
	TempToken   string   `json:"temp_token,omitempty"`
	Requires2FA bool     `json:"requires_2fa,omitempty"`
	Usuario     *Usuario `json:"usuario,omitempty"`
}

type CreateUsuarioRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
	Telefono  string `json:"telefono"`
	Distrito  string `json:"distrito"`
	Barrio    string `json:"barrio"`
	Direccion string `json:"direccion"`
	Tipo      string `json:"tipo"`
}

type UpdateUsuarioRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Distrito  string `json:"distrito"`
	Barrio    string `json:"barrio"`
	Direccion string `json:"direccion"`
	Tipo      string `json:"tipo"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
