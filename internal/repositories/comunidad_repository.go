package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type ComunidadRepository struct {
	DB db.Querier
}

func NewComunidadRepository(q db.Querier) *ComunidadRepository {
	return &ComunidadRepository{DB: q}
}

const comunidadColumns = `id, nombre, direccion, distrito, barrio, num_viviendas,
         administrador_id, activo, created_at, updated_at`

func (r *ComunidadRepository) Create(ctx context.Context, c *models.Comunidad) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO comunidades(nombre, direccion, distrito, barrio, num_viviendas, administrador_id)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, activo, created_at, updated_at`,
		c.Nombre, c.Direccion, c.Distrito, c.Barrio, c.NumViviendas, c.AdministradorID,
	).Scan(&c.ID, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComunidadRepository) Get(ctx context.Context, id int) (*models.Comunidad, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+comunidadColumns+` FROM comunidades WHERE id=$1`, id)
	return scanComunidad(row)
}

func (r *ComunidadRepository) List(ctx context.Context) ([]*models.Comunidad, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+comunidadColumns+` FROM comunidades WHERE activo ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comunidades []*models.Comunidad
	for rows.Next() {
		c, err := scanComunidad(rows)
		if err != nil {
			return nil, err
		}
		comunidades = append(comunidades, c)
	}
	return comunidades, nil
}

func (r *ComunidadRepository) ListByAdministrador(ctx context.Context, administradorID int) ([]*models.Comunidad, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+comunidadColumns+` FROM comunidades WHERE activo AND administrador_id=$1 ORDER BY nombre`,
		administradorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comunidades []*models.Comunidad
	for rows.Next() {
		c, err := scanComunidad(rows)
		if err != nil {
			return nil, err
		}
		comunidades = append(comunidades, c)
	}
	return comunidades, nil
}

func (r *ComunidadRepository) Update(ctx context.Context, c *models.Comunidad) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE comunidades SET nombre=$1, direccion=$2, distrito=$3, barrio=$4,
             num_viviendas=$5, administrador_id=$6, updated_at=NOW()
         WHERE id=$7`,
		c.Nombre, c.Direccion, c.Distrito, c.Barrio, c.NumViviendas, c.AdministradorID, c.ID)
	return err
}

func (r *ComunidadRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE comunidades SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

func scanComunidad(row rowScanner) (*models.Comunidad, error) {
	var c models.Comunidad
	err := row.Scan(&c.ID, &c.Nombre, &c.Direccion, &c.Distrito, &c.Barrio,
		&c.NumViviendas, &c.AdministradorID, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
