package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type UsuarioRepository struct {
	DB db.Querier
}

func NewUsuarioRepository(q db.Querier) *UsuarioRepository {
	return &UsuarioRepository{DB: q}
}

const usuarioColumns = `id, nombre, apellidos, email, password_hash, rol, telefono,
         distrito, barrio, direccion, tipo, litros_aportados, activo, created_at, updated_at`

func (r *UsuarioRepository) Create(ctx context.Context, u *models.Usuario) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO usuarios(nombre, apellidos, email, password_hash, rol, telefono, distrito, barrio, direccion, tipo)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, litros_aportados, activo, created_at, updated_at`,
		u.Nombre, u.Apellidos, u.Email, u.PasswordHash, u.Rol, u.Telefono,
		u.Distrito, u.Barrio, u.Direccion, u.Tipo,
	).Scan(&u.ID, &u.LitrosAportados, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UsuarioRepository) Get(ctx context.Context, id int) (*models.Usuario, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id=$1`, id)
	return scanUsuario(row)
}

func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE email=$1`, email)
	return scanUsuario(row)
}

func (r *UsuarioRepository) List(ctx context.Context) ([]*models.Usuario, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE activo ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []*models.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) ListByRol(ctx context.Context, rol string) ([]*models.Usuario, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE activo AND rol=$1 ORDER BY created_at DESC`, rol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []*models.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, u *models.Usuario) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE usuarios SET nombre=$1, apellidos=$2, email=$3, telefono=$4, distrito=$5,
             barrio=$6, direccion=$7, tipo=$8, updated_at=NOW()
         WHERE id=$9`,
		u.Nombre, u.Apellidos, u.Email, u.Telefono, u.Distrito,
		u.Barrio, u.Direccion, u.Tipo, u.ID)
	return err
}

func (r *UsuarioRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE usuarios SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	return err
}

// SoftDelete flags the user inactive; user rows are never physically removed.
func (r *UsuarioRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE usuarios SET activo=FALSE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

// AddLitros rolls the lifetime liter counter forward by delta.
func (r *UsuarioRepository) AddLitros(ctx context.Context, id int, delta float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE usuarios SET litros_aportados=litros_aportados+$1, updated_at=NOW() WHERE id=$2`,
		delta, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUsuario(row rowScanner) (*models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Apellidos, &u.Email, &u.PasswordHash, &u.Rol,
		&u.Telefono, &u.Distrito, &u.Barrio, &u.Direccion, &u.Tipo,
		&u.LitrosAportados, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
