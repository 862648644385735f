package repositories

import (
	"context"
	"errors"
	"time"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

// ErrVersionConflict is returned when a reconciliation claim loses the race
// against a concurrent claim for the same route.
var ErrVersionConflict = errors.New("route version conflict")

type RutaRepository struct {
	DB db.Querier
}

func NewRutaRepository(q db.Querier) *RutaRepository {
	return &RutaRepository{DB: q}
}

const rutaColumns = `id, nombre, distrito, barrios, fecha, completada, litros_totales,
         fecha_completada, version, activo, created_at, updated_at`

func (r *RutaRepository) Create(ctx context.Context, ruta *models.Ruta) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO rutas(nombre, distrito, barrios, fecha)
         VALUES($1, $2, $3, $4)
         RETURNING id, completada, litros_totales, version, activo, created_at, updated_at`,
		ruta.Nombre, ruta.Distrito, ruta.Barrios, ruta.Fecha,
	).Scan(&ruta.ID, &ruta.Completada, &ruta.LitrosTotales, &ruta.Version,
		&ruta.Activo, &ruta.CreatedAt, &ruta.UpdatedAt)
}

// Get loads a route together with its ordered client list.
func (r *RutaRepository) Get(ctx context.Context, id int) (*models.Ruta, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+rutaColumns+` FROM rutas WHERE id=$1`, id)

	var ruta models.Ruta
	err := row.Scan(&ruta.ID, &ruta.Nombre, &ruta.Distrito, &ruta.Barrios, &ruta.Fecha,
		&ruta.Completada, &ruta.LitrosTotales, &ruta.FechaCompletada, &ruta.Version,
		&ruta.Activo, &ruta.CreatedAt, &ruta.UpdatedAt)
	if err != nil {
		return nil, err
	}

	clientes, err := r.ListClientes(ctx, id)
	if err != nil {
		return nil, err
	}
	ruta.Clientes = clientes
	return &ruta, nil
}

func (r *RutaRepository) List(ctx context.Context) ([]*models.Ruta, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+rutaColumns+` FROM rutas WHERE activo ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rutas []*models.Ruta
	for rows.Next() {
		var ruta models.Ruta
		err := rows.Scan(&ruta.ID, &ruta.Nombre, &ruta.Distrito, &ruta.Barrios, &ruta.Fecha,
			&ruta.Completada, &ruta.LitrosTotales, &ruta.FechaCompletada, &ruta.Version,
			&ruta.Activo, &ruta.CreatedAt, &ruta.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rutas = append(rutas, &ruta)
	}
	return rutas, nil
}

func (r *RutaRepository) Update(ctx context.Context, ruta *models.Ruta) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rutas SET nombre=$1, distrito=$2, barrios=$3, fecha=$4, updated_at=NOW()
         WHERE id=$5`,
		ruta.Nombre, ruta.Distrito, ruta.Barrios, ruta.Fecha, ruta.ID)
	return err
}

// SoftDelete flags the route inactive; routes are never physically removed.
func (r *RutaRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rutas SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *RutaRepository) ListClientes(ctx context.Context, rutaID int) ([]models.RutaCliente, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ruta_id, cliente_id, nombre, direccion, litros, posicion
         FROM ruta_clientes WHERE ruta_id=$1 ORDER BY posicion`, rutaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clientes []models.RutaCliente
	for rows.Next() {
		var c models.RutaCliente
		if err := rows.Scan(&c.RutaID, &c.ClienteID, &c.Nombre, &c.Direccion, &c.Litros, &c.Posicion); err != nil {
			return nil, err
		}
		clientes = append(clientes, c)
	}
	return clientes, nil
}

func (r *RutaRepository) AddCliente(ctx context.Context, c *models.RutaCliente) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO ruta_clientes(ruta_id, cliente_id, nombre, direccion, litros, posicion)
         VALUES($1, $2, $3, $4, $5, $6)
         ON CONFLICT (ruta_id, cliente_id) DO UPDATE
             SET nombre=EXCLUDED.nombre, direccion=EXCLUDED.direccion,
                 litros=EXCLUDED.litros, posicion=EXCLUDED.posicion`,
		c.RutaID, c.ClienteID, c.Nombre, c.Direccion, c.Litros, c.Posicion)
	return err
}

func (r *RutaRepository) SetLitros(ctx context.Context, rutaID, clienteID int, litros float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE ruta_clientes SET litros=$1 WHERE ruta_id=$2 AND cliente_id=$3`,
		litros, rutaID, clienteID)
	return err
}

func (r *RutaRepository) RemoveCliente(ctx context.Context, rutaID, clienteID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM ruta_clientes WHERE ruta_id=$1 AND cliente_id=$2`, rutaID, clienteID)
	return err
}

// ClaimReconciliation bumps the route version iff it still matches the
// version the caller read. A zero-row update means another reconciliation
// claimed the route first.
func (r *RutaRepository) ClaimReconciliation(ctx context.Context, id, expectedVersion int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE rutas SET version=version+1, updated_at=NOW()
         WHERE id=$1 AND version=$2`, id, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *RutaRepository) MarkCompletada(ctx context.Context, id int, litrosTotales float64, fecha time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rutas SET completada=TRUE, litros_totales=$1, fecha_completada=$2, updated_at=NOW()
         WHERE id=$3`, litrosTotales, fecha, id)
	return err
}
