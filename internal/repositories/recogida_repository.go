package repositories

import (
	"context"
	"time"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type RecogidaRepository struct {
	DB db.Querier
}

func NewRecogidaRepository(q db.Querier) *RecogidaRepository {
	return &RecogidaRepository{DB: q}
}

const recogidaColumns = `id, ruta_id, cliente_id, litros_recogidos, distrito, direccion,
         fecha, estado_recogida, completada, fecha_completada, created_at, updated_at`

func (r *RecogidaRepository) Create(ctx context.Context, rec *models.Recogida) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO recogidas(ruta_id, cliente_id, litros_recogidos, distrito, direccion,
             fecha, estado_recogida, completada, fecha_completada)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		rec.RutaID, rec.ClienteID, rec.LitrosRecogidos, rec.Distrito, rec.Direccion,
		rec.Fecha, rec.EstadoRecogida, rec.Completada, rec.FechaCompletada,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecogidaRepository) Get(ctx context.Context, id int) (*models.Recogida, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+recogidaColumns+` FROM recogidas WHERE id=$1 AND activo`, id)
	return scanRecogida(row)
}

func (r *RecogidaRepository) List(ctx context.Context) ([]models.Recogida, error) {
	return r.list(ctx,
		`SELECT `+recogidaColumns+` FROM recogidas WHERE activo ORDER BY fecha DESC`)
}

func (r *RecogidaRepository) ListByRuta(ctx context.Context, rutaID int) ([]models.Recogida, error) {
	return r.list(ctx,
		`SELECT `+recogidaColumns+` FROM recogidas WHERE activo AND ruta_id=$1 ORDER BY fecha DESC`, rutaID)
}

func (r *RecogidaRepository) ListByCliente(ctx context.Context, clienteID int) ([]models.Recogida, error) {
	return r.list(ctx,
		`SELECT `+recogidaColumns+` FROM recogidas WHERE activo AND cliente_id=$1 ORDER BY fecha DESC`, clienteID)
}

func (r *RecogidaRepository) Update(ctx context.Context, rec *models.Recogida) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE recogidas SET litros_recogidos=$1, estado_recogida=$2, completada=$3,
             fecha_completada=$4, updated_at=NOW()
         WHERE id=$5`,
		rec.LitrosRecogidos, rec.EstadoRecogida, rec.Completada, rec.FechaCompletada, rec.ID)
	return err
}

// Complete sets the record's liters and stamps it completed in one write.
// Used by the route batch-completion fan-out.
func (r *RecogidaRepository) Complete(ctx context.Context, id int, litros float64, fecha time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE recogidas SET litros_recogidos=$1, estado_recogida=$2, completada=TRUE,
             fecha_completada=$3, updated_at=NOW()
         WHERE id=$4`,
		litros, models.EstadoCompletada, fecha, id)
	return err
}

// SoftDelete flags the record inactive.
func (r *RecogidaRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE recogidas SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *RecogidaRepository) list(ctx context.Context, sql string, args ...any) ([]models.Recogida, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recogidas []models.Recogida
	for rows.Next() {
		rec, err := scanRecogida(rows)
		if err != nil {
			return nil, err
		}
		recogidas = append(recogidas, *rec)
	}
	return recogidas, nil
}

func scanRecogida(row rowScanner) (*models.Recogida, error) {
	var rec models.Recogida
	err := row.Scan(&rec.ID, &rec.RutaID, &rec.ClienteID, &rec.LitrosRecogidos,
		&rec.Distrito, &rec.Direccion, &rec.Fecha, &rec.EstadoRecogida,
		&rec.Completada, &rec.FechaCompletada, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
