package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type TrabajadorRepository struct {
	DB db.Querier
}

func NewTrabajadorRepository(q db.Querier) *TrabajadorRepository {
	return &TrabajadorRepository{DB: q}
}

func (r *TrabajadorRepository) Create(ctx context.Context, t *models.Trabajador) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO trabajadores(nombre, apellidos, telefono, email)
         VALUES($1, $2, $3, $4)
         RETURNING id, activo, created_at, updated_at`,
		t.Nombre, t.Apellidos, t.Telefono, t.Email,
	).Scan(&t.ID, &t.Activo, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TrabajadorRepository) Get(ctx context.Context, id int) (*models.Trabajador, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, nombre, apellidos, telefono, email, activo, created_at, updated_at
         FROM trabajadores WHERE id=$1`, id)

	var t models.Trabajador
	err := row.Scan(&t.ID, &t.Nombre, &t.Apellidos, &t.Telefono, &t.Email,
		&t.Activo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrabajadorRepository) List(ctx context.Context) ([]*models.Trabajador, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, nombre, apellidos, telefono, email, activo, created_at, updated_at
         FROM trabajadores WHERE activo ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trabajadores []*models.Trabajador
	for rows.Next() {
		var t models.Trabajador
		err := rows.Scan(&t.ID, &t.Nombre, &t.Apellidos, &t.Telefono, &t.Email,
			&t.Activo, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		trabajadores = append(trabajadores, &t)
	}
	return trabajadores, nil
}

func (r *TrabajadorRepository) Update(ctx context.Context, t *models.Trabajador) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trabajadores SET nombre=$1, apellidos=$2, telefono=$3, email=$4, updated_at=NOW()
         WHERE id=$5`,
		t.Nombre, t.Apellidos, t.Telefono, t.Email, t.ID)
	return err
}

func (r *TrabajadorRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trabajadores SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}
