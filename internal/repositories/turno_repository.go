package repositories

import (
	"context"
	"time"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type TurnoRepository struct {
	DB db.Querier
}

func NewTurnoRepository(q db.Querier) *TurnoRepository {
	return &TurnoRepository{DB: q}
}

func (r *TurnoRepository) Create(ctx context.Context, t *models.Turno) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO turnos(trabajador_id, fecha, hora_inicio, hora_fin)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		t.TrabajadorID, t.Fecha, t.HoraInicio, t.HoraFin,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TurnoRepository) ListByTrabajador(ctx context.Context, trabajadorID int) ([]models.Turno, error) {
	return r.list(ctx,
		`SELECT id, trabajador_id, fecha, hora_inicio, hora_fin, created_at
         FROM turnos WHERE trabajador_id=$1 ORDER BY fecha`, trabajadorID)
}

func (r *TurnoRepository) ListByRango(ctx context.Context, desde, hasta time.Time) ([]models.Turno, error) {
	return r.list(ctx,
		`SELECT id, trabajador_id, fecha, hora_inicio, hora_fin, created_at
         FROM turnos WHERE fecha >= $1 AND fecha <= $2 ORDER BY fecha`, desde, hasta)
}

// Delete physically removes the shift; turnos have no soft-delete flag.
func (r *TurnoRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM turnos WHERE id=$1`, id)
	return err
}

func (r *TurnoRepository) list(ctx context.Context, sql string, args ...any) ([]models.Turno, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turnos []models.Turno
	for rows.Next() {
		var t models.Turno
		if err := rows.Scan(&t.ID, &t.TrabajadorID, &t.Fecha, &t.HoraInicio, &t.HoraFin, &t.CreatedAt); err != nil {
			return nil, err
		}
		turnos = append(turnos, t)
	}
	return turnos, nil
}
