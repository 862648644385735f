package services

import (
	"context"
	"errors"

	"oleo-backend/internal/auth"
	"oleo-backend/internal/cache"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

var (
	ErrCredencialesInvalidas = errors.New("invalid credentials")
	ErrEmailEnUso            = errors.New("email already registered")
	ErrUsuarioInactivo       = errors.New("user is inactive")
)

type UsuarioService struct {
	UsuarioRepo *repositories.UsuarioRepository
	TOTPRepo    *repositories.TOTPRepository
	JWT         *auth.JWTManager
}

func NewUsuarioService(usuarioRepo *repositories.UsuarioRepository, totpRepo *repositories.TOTPRepository, jwtManager *auth.JWTManager) *UsuarioService {
	return &UsuarioService{UsuarioRepo: usuarioRepo, TOTPRepo: totpRepo, JWT: jwtManager}
}

// Signup registers a public visitor as a client account.
func (s *UsuarioService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	if existing, err := s.UsuarioRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailEnUso
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.Usuario{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Email:        req.Email,
		PasswordHash: hash,
		Rol:          models.RolCliente,
		Telefono:     req.Telefono,
		Distrito:     req.Distrito,
		Barrio:       req.Barrio,
		Direccion:    req.Direccion,
		Tipo:         req.Tipo,
	}
	if err := s.UsuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Signup: nuevo cliente %d (%s)", u.ID, u.Email)
	return &models.LoginResponse{Token: token, Usuario: u}, nil
}

// Login authenticates by email and password. Admins with 2FA enabled get a
// short-lived temp token instead of a session token and must complete the
// TOTP step.
func (s *UsuarioService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	u, err := s.UsuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if !u.Activo {
		return nil, ErrUsuarioInactivo
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrCredencialesInvalidas
	}

	if u.Rol == models.RolAdmin && s.totpEnabled(ctx, u.ID) {
		tempToken, err := s.JWT.GenerateTempToken(u)
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{TempToken: tempToken, Requires2FA: true}, nil
	}

	token, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, Usuario: u}, nil
}

func (s *UsuarioService) totpEnabled(ctx context.Context, userID int) bool {
	if s.TOTPRepo == nil {
		return false
	}
	t, err := s.TOTPRepo.Get(ctx, userID)
	return err == nil && t.Enabled
}

// CreateUsuario is the back-office path that can assign any role.
func (s *UsuarioService) CreateUsuario(ctx context.Context, req *models.CreateUsuarioRequest) (*models.Usuario, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if existing, err := s.UsuarioRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailEnUso
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = models.RolCliente
	}

	u := &models.Usuario{
		Nombre:       req.Nombre,
		Apellidos:    req.Apellidos,
		Email:        req.Email,
		PasswordHash: hash,
		Rol:          rol,
		Telefono:     req.Telefono,
		Distrito:     req.Distrito,
		Barrio:       req.Barrio,
		Direccion:    req.Direccion,
		Tipo:         req.Tipo,
	}
	if err := s.UsuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	cache.InvalidateUsuarioCaches(ctx)
	return u, nil
}

func (s *UsuarioService) GetUsuario(ctx context.Context, id int) (*models.Usuario, error) {
	return s.UsuarioRepo.Get(ctx, id)
}

func (s *UsuarioService) ListUsuarios(ctx context.Context) ([]*models.Usuario, error) {
	return s.UsuarioRepo.List(ctx)
}

func (s *UsuarioService) ListByRol(ctx context.Context, rol string) ([]*models.Usuario, error) {
	return s.UsuarioRepo.ListByRol(ctx, rol)
}

func (s *UsuarioService) UpdateUsuario(ctx context.Context, id int, req *models.UpdateUsuarioRequest) (*models.Usuario, error) {
	u, err := s.UsuarioRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Nombre = req.Nombre
	u.Apellidos = req.Apellidos
	if req.Email != "" {
		u.Email = req.Email
	}
	u.Telefono = req.Telefono
	u.Distrito = req.Distrito
	u.Barrio = req.Barrio
	u.Direccion = req.Direccion
	u.Tipo = req.Tipo

	if err := s.UsuarioRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	cache.InvalidateUsuarioCaches(ctx)
	return u, nil
}

func (s *UsuarioService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	u, err := s.UsuarioRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		return ErrCredencialesInvalidas
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.UsuarioRepo.UpdatePassword(ctx, id, hash)
}

func (s *UsuarioService) DeleteUsuario(ctx context.Context, id int) error {
	if err := s.UsuarioRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateUsuarioCaches(ctx)
	return nil
}
