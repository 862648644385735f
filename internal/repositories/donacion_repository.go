package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type DonacionRepository struct {
	DB db.Querier
}

func NewDonacionRepository(q db.Querier) *DonacionRepository {
	return &DonacionRepository{DB: q}
}

func (r *DonacionRepository) Create(ctx context.Context, d *models.Donacion) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO donaciones(order_id, nombre, email, importe, estado)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		d.OrderID, d.Nombre, d.Email, d.Importe, d.Estado,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DonacionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Donacion, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, order_id, payment_id, nombre, email, importe, estado, created_at, updated_at
         FROM donaciones WHERE order_id=$1`, orderID)

	var d models.Donacion
	err := row.Scan(&d.ID, &d.OrderID, &d.PaymentID, &d.Nombre, &d.Email,
		&d.Importe, &d.Estado, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonacionRepository) UpdateEstado(ctx context.Context, orderID, paymentID, estado string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE donaciones SET payment_id=$1, estado=$2, updated_at=NOW() WHERE order_id=$3`,
		paymentID, estado, orderID)
	return err
}

func (r *DonacionRepository) List(ctx context.Context) ([]models.Donacion, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, order_id, payment_id, nombre, email, importe, estado, created_at, updated_at
         FROM donaciones ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donaciones []models.Donacion
	for rows.Next() {
		var d models.Donacion
		err := rows.Scan(&d.ID, &d.OrderID, &d.PaymentID, &d.Nombre, &d.Email,
			&d.Importe, &d.Estado, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		donaciones = append(donaciones, d)
	}
	return donaciones, nil
}
