package services

import (
	"context"
	"errors"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
)

const (
	IncidenciaAbierta  = "abierta"
	IncidenciaResuelta = "resuelta"
)

type IncidenciaService struct {
	IncidenciaRepo *repositories.IncidenciaRepository
}

func NewIncidenciaService(incidenciaRepo *repositories.IncidenciaRepository) *IncidenciaService {
	return &IncidenciaService{IncidenciaRepo: incidenciaRepo}
}

func (s *IncidenciaService) CreateIncidencia(ctx context.Context, req *models.CreateIncidenciaRequest) (*models.Incidencia, error) {
	if req.Descripcion == "" {
		return nil, errors.New("descripcion is required")
	}

	i := &models.Incidencia{
		RutaID:      req.RutaID,
		ClienteID:   req.ClienteID,
		Descripcion: req.Descripcion,
		Estado:      IncidenciaAbierta,
	}
	if err := s.IncidenciaRepo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *IncidenciaService) ListIncidencias(ctx context.Context) ([]models.Incidencia, error) {
	return s.IncidenciaRepo.List(ctx)
}

func (s *IncidenciaService) ResolverIncidencia(ctx context.Context, id int) error {
	return s.IncidenciaRepo.UpdateEstado(ctx, id, IncidenciaResuelta)
}

func (s *IncidenciaService) DeleteIncidencia(ctx context.Context, id int) error {
	return s.IncidenciaRepo.Delete(ctx, id)
}
