package services

import (
	"context"
	"errors"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
)

type ComunidadService struct {
	ComunidadRepo *repositories.ComunidadRepository
}

func NewComunidadService(comunidadRepo *repositories.ComunidadRepository) *ComunidadService {
	return &ComunidadService{ComunidadRepo: comunidadRepo}
}

func (s *ComunidadService) CreateComunidad(ctx context.Context, req *models.CreateComunidadRequest) (*models.Comunidad, error) {
	if req.Nombre == "" {
		return nil, errors.New("nombre is required")
	}

	c := &models.Comunidad{
		Nombre:          req.Nombre,
		Direccion:       req.Direccion,
		Distrito:        req.Distrito,
		Barrio:          req.Barrio,
		NumViviendas:    req.NumViviendas,
		AdministradorID: req.AdministradorID,
	}
	if err := s.ComunidadRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComunidadService) GetComunidad(ctx context.Context, id int) (*models.Comunidad, error) {
	return s.ComunidadRepo.Get(ctx, id)
}

func (s *ComunidadService) ListComunidades(ctx context.Context) ([]*models.Comunidad, error) {
	return s.ComunidadRepo.List(ctx)
}

// ListByAdministrador restricts the listing to communities managed by one
// community-admin user.
func (s *ComunidadService) ListByAdministrador(ctx context.Context, administradorID int) ([]*models.Comunidad, error) {
	return s.ComunidadRepo.ListByAdministrador(ctx, administradorID)
}

func (s *ComunidadService) UpdateComunidad(ctx context.Context, id int, req *models.UpdateComunidadRequest) (*models.Comunidad, error) {
	c, err := s.ComunidadRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Nombre = req.Nombre
	c.Direccion = req.Direccion
	c.Distrito = req.Distrito
	c.Barrio = req.Barrio
	c.NumViviendas = req.NumViviendas
	c.AdministradorID = req.AdministradorID

	if err := s.ComunidadRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComunidadService) DeleteComunidad(ctx context.Context, id int) error {
	return s.ComunidadRepo.SoftDelete(ctx, id)
}
