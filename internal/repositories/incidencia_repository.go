package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type IncidenciaRepository struct {
	DB db.Querier
}

func NewIncidenciaRepository(q db.Querier) *IncidenciaRepository {
	return &IncidenciaRepository{DB: q}
}

func (r *IncidenciaRepository) Create(ctx context.Context, i *models.Incidencia) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO incidencias(ruta_id, cliente_id, descripcion, estado)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		i.RutaID, i.ClienteID, i.Descripcion, i.Estado,
	).Scan(&i.ID, &i.CreatedAt)
}

func (r *IncidenciaRepository) List(ctx context.Context) ([]models.Incidencia, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ruta_id, cliente_id, descripcion, estado, created_at
         FROM incidencias ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidencias []models.Incidencia
	for rows.Next() {
		var i models.Incidencia
		if err := rows.Scan(&i.ID, &i.RutaID, &i.ClienteID, &i.Descripcion, &i.Estado, &i.CreatedAt); err != nil {
			return nil, err
		}
		incidencias = append(incidencias, i)
	}
	return incidencias, nil
}

func (r *IncidenciaRepository) UpdateEstado(ctx context.Context, id int, estado string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE incidencias SET estado=$1 WHERE id=$2`, estado, id)
	return err
}

// Delete physically removes the incident; incidencias have no soft-delete flag.
func (r *IncidenciaRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM incidencias WHERE id=$1`, id)
	return err
}
