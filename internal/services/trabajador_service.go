package services

import (
	"context"
	"errors"
	"time"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
)

type TrabajadorService struct {
	TrabajadorRepo *repositories.TrabajadorRepository
	TurnoRepo      *repositories.TurnoRepository
}

func NewTrabajadorService(trabajadorRepo *repositories.TrabajadorRepository, turnoRepo *repositories.TurnoRepository) *TrabajadorService {
	return &TrabajadorService{TrabajadorRepo: trabajadorRepo, TurnoRepo: turnoRepo}
}

func (s *TrabajadorService) CreateTrabajador(ctx context.Context, req *models.CreateTrabajadorRequest) (*models.Trabajador, error) {
	if req.Nombre == "" {
		return nil, errors.New("nombre is required")
	}

	t := &models.Trabajador{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Telefono:  req.Telefono,
		Email:     req.Email,
	}
	if err := s.TrabajadorRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrabajadorService) GetTrabajador(ctx context.Context, id int) (*models.Trabajador, error) {
	return s.TrabajadorRepo.Get(ctx, id)
}

func (s *TrabajadorService) ListTrabajadores(ctx context.Context) ([]*models.Trabajador, error) {
	return s.TrabajadorRepo.List(ctx)
}

func (s *TrabajadorService) UpdateTrabajador(ctx context.Context, id int, req *models.UpdateTrabajadorRequest) (*models.Trabajador, error) {
	t, err := s.TrabajadorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Nombre = req.Nombre
	t.Apellidos = req.Apellidos
	t.Telefono = req.Telefono
	t.Email = req.Email

	if err := s.TrabajadorRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrabajadorService) DeleteTrabajador(ctx context.Context, id int) error {
	return s.TrabajadorRepo.SoftDelete(ctx, id)
}

func (s *TrabajadorService) CreateTurno(ctx context.Context, req *models.CreateTurnoRequest) (*models.Turno, error) {
	if req.TrabajadorID == 0 {
		return nil, errors.New("trabajador_id is required")
	}
	if req.HoraInicio >= req.HoraFin {
		return nil, errors.New("hora_inicio must be before hora_fin")
	}

	t := &models.Turno{
		TrabajadorID: req.TrabajadorID,
		Fecha:        req.Fecha,
		HoraInicio:   req.HoraInicio,
		HoraFin:      req.HoraFin,
	}
	if err := s.TurnoRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrabajadorService) ListTurnos(ctx context.Context, trabajadorID int) ([]models.Turno, error) {
	return s.TurnoRepo.ListByTrabajador(ctx, trabajadorID)
}

func (s *TrabajadorService) ListTurnosRango(ctx context.Context, desde, hasta time.Time) ([]models.Turno, error) {
	return s.TurnoRepo.ListByRango(ctx, desde, hasta)
}

func (s *TrabajadorService) DeleteTurno(ctx context.Context, id int) error {
	return s.TurnoRepo.Delete(ctx, id)
}
