package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type ComisionRepository struct {
	DB db.Querier
}

func NewComisionRepository(q db.Querier) *ComisionRepository {
	return &ComisionRepository{DB: q}
}

// Accrue adds liters and amount to the agent's commission row for the
// month, creating the row on first accrual.
func (r *ComisionRepository) Accrue(ctx context.Context, c *models.Comision) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO comisiones(comercial_id, cliente_id, litros, importe, mes)
         VALUES($1, $2, $3, $4, $5)
         ON CONFLICT (comercial_id, cliente_id, mes) DO UPDATE
             SET litros=comisiones.litros+EXCLUDED.litros,
                 importe=comisiones.importe+EXCLUDED.importe,
                 updated_at=NOW()
         RETURNING id, litros, importe, pagada, created_at, updated_at`,
		c.ComercialID, c.ClienteID, c.Litros, c.Importe, c.Mes,
	).Scan(&c.ID, &c.Litros, &c.Importe, &c.Pagada, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComisionRepository) ListByComercial(ctx context.Context, comercialID int) ([]models.Comision, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, comercial_id, cliente_id, litros, importe, mes, pagada, created_at, updated_at
         FROM comisiones WHERE comercial_id=$1 ORDER BY mes DESC`, comercialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comisiones []models.Comision
	for rows.Next() {
		var c models.Comision
		err := rows.Scan(&c.ID, &c.ComercialID, &c.ClienteID, &c.Litros, &c.Importe,
			&c.Mes, &c.Pagada, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		comisiones = append(comisiones, c)
	}
	return comisiones, nil
}

func (r *ComisionRepository) MarkPagada(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE comisiones SET pagada=TRUE, updated_at=NOW() WHERE id=$1`, id)
	return err
}
