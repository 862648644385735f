package services

import (
	"context"
	"errors"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
)

type RutaService struct {
	RutaRepo *repositories.RutaRepository
}

func NewRutaService(rutaRepo *repositories.RutaRepository) *RutaService {
	return &RutaService{RutaRepo: rutaRepo}
}

func (s *RutaService) CreateRuta(ctx context.Context, req *models.CreateRutaRequest) (*models.Ruta, error) {
	if req.Nombre == "" {
		return nil, errors.New("nombre is required")
	}

	ruta := &models.Ruta{
		Nombre:   req.Nombre,
		Distrito: req.Distrito,
		Barrios:  req.Barrios,
		Fecha:    req.Fecha,
	}
	if err := s.RutaRepo.Create(ctx, ruta); err != nil {
		return nil, err
	}
	return ruta, nil
}

func (s *RutaService) GetRuta(ctx context.Context, id int) (*models.Ruta, error) {
	return s.RutaRepo.Get(ctx, id)
}

func (s *RutaService) ListRutas(ctx context.Context) ([]*models.Ruta, error) {
	return s.RutaRepo.List(ctx)
}

func (s *RutaService) UpdateRuta(ctx context.Context, id int, req *models.UpdateRutaRequest) (*models.Ruta, error) {
	ruta, err := s.RutaRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ruta.Nombre = req.Nombre
	ruta.Distrito = req.Distrito
	ruta.Barrios = req.Barrios
	ruta.Fecha = req.Fecha

	if err := s.RutaRepo.Update(ctx, ruta); err != nil {
		return nil, err
	}
	return ruta, nil
}

func (s *RutaService) DeleteRuta(ctx context.Context, id int) error {
	return s.RutaRepo.SoftDelete(ctx, id)
}

// AddCliente adds or refreshes a stop on the route. Completed routes accept
// no further list changes.
func (s *RutaService) AddCliente(ctx context.Context, rutaID int, req *models.AddRutaClienteRequest) error {
	ruta, err := s.RutaRepo.Get(ctx, rutaID)
	if err != nil {
		return err
	}
	if ruta.Completada {
		return errors.New("route already completed")
	}

	c := &models.RutaCliente{
		RutaID:    rutaID,
		ClienteID: req.ClienteID,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Litros:    req.Litros,
		Posicion:  req.Posicion,
	}
	return s.RutaRepo.AddCliente(ctx, c)
}

func (s *RutaService) SetLitros(ctx context.Context, rutaID int, req *models.SetLitrosRequest) error {
	if req.Litros < 0 {
		return errors.New("litros must not be negative")
	}
	return s.RutaRepo.SetLitros(ctx, rutaID, req.ClienteID, req.Litros)
}

func (s *RutaService) RemoveCliente(ctx context.Context, rutaID, clienteID int) error {
	return s.RutaRepo.RemoveCliente(ctx, rutaID, clienteID)
}
