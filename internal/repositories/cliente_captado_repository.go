package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type ClienteCaptadoRepository struct {
	DB db.Querier
}

func NewClienteCaptadoRepository(q db.Querier) *ClienteCaptadoRepository {
	return &ClienteCaptadoRepository{DB: q}
}

const captadoColumns = `id, comercial_id, cliente_id, nombre, telefono, direccion,
         litros_recogidos, fecha_captacion, activo, created_at, updated_at`

func (r *ClienteCaptadoRepository) Create(ctx context.Context, c *models.ClienteCaptado) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO clientes_captados(comercial_id, cliente_id, nombre, telefono, direccion)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, litros_recogidos, fecha_captacion, activo, created_at, updated_at`,
		c.ComercialID, c.ClienteID, c.Nombre, c.Telefono, c.Direccion,
	).Scan(&c.ID, &c.LitrosRecogidos, &c.FechaCaptacion, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClienteCaptadoRepository) ListByComercial(ctx context.Context, comercialID int) ([]models.ClienteCaptado, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+captadoColumns+` FROM clientes_captados
         WHERE activo AND comercial_id=$1 ORDER BY fecha_captacion DESC`, comercialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captados []models.ClienteCaptado
	for rows.Next() {
		var c models.ClienteCaptado
		err := rows.Scan(&c.ID, &c.ComercialID, &c.ClienteID, &c.Nombre, &c.Telefono,
			&c.Direccion, &c.LitrosRecogidos, &c.FechaCaptacion, &c.Activo,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		captados = append(captados, c)
	}
	return captados, nil
}

// AddLitrosByCliente rolls the attribution counter forward for every
// captured-client record linked to the given client.
func (r *ClienteCaptadoRepository) AddLitrosByCliente(ctx context.Context, clienteID int, delta float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clientes_captados SET litros_recogidos=litros_recogidos+$1, updated_at=NOW()
         WHERE activo AND cliente_id=$2`, delta, clienteID)
	return err
}

// ComercialForCliente returns the id of the agent who captured the client,
// or 0 when the client has no attribution.
func (r *ClienteCaptadoRepository) ComercialForCliente(ctx context.Context, clienteID int) (int, error) {
	var comercialID int
	err := r.DB.QueryRow(ctx,
		`SELECT comercial_id FROM clientes_captados
         WHERE activo AND cliente_id=$1 ORDER BY fecha_captacion LIMIT 1`, clienteID).Scan(&comercialID)
	if err != nil {
		return 0, err
	}
	return comercialID, nil
}

func (r *ClienteCaptadoRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clientes_captados SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}
