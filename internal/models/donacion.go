package models

import "time"

// Donacion is an online donation processed through the payment gateway.
type Donacion struct {
	ID        int       `json:"id"`
	OrderID   string    `json:"order_id"`
	PaymentID *string   `json:"payment_id,omitempty"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Importe   float64   `json:"importe"` // euros
	Estado    string    `json:"estado"`  // created, paid, failed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDonacionRequest struct {
	Nombre  string  `json:"nombre"`
	Email   string  `json:"email"`
	Importe float64 `json:"importe"`
}
