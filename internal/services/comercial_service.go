package services

import (
	"context"
	"errors"
	"time"

	"oleo-backend/internal/config"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// ComercialService manages captured-client attribution and commission
// accrual for commercial agents.
type ComercialService struct {
	CaptadoRepo  *repositories.ClienteCaptadoRepository
	ComisionRepo *repositories.ComisionRepository

	tarifaPorLitro float64
}

func NewComercialService(captadoRepo *repositories.ClienteCaptadoRepository, comisionRepo *repositories.ComisionRepository, cfg *config.Config) *ComercialService {
	return &ComercialService{
		CaptadoRepo:    captadoRepo,
		ComisionRepo:   comisionRepo,
		tarifaPorLitro: cfg.Comisiones.TarifaPorLitro,
	}
}

func (s *ComercialService) CreateCaptado(ctx context.Context, comercialID int, req *models.CreateClienteCaptadoRequest) (*models.ClienteCaptado, error) {
	if req.Nombre == "" {
		return nil, errors.New("nombre is required")
	}

	c := &models.ClienteCaptado{
		ComercialID: comercialID,
		ClienteID:   req.ClienteID,
		Nombre:      req.Nombre,
		Telefono:    req.Telefono,
		Direccion:   req.Direccion,
	}
	if err := s.CaptadoRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComercialService) ListCaptados(ctx context.Context, comercialID int) ([]models.ClienteCaptado, error) {
	return s.CaptadoRepo.ListByComercial(ctx, comercialID)
}

func (s *ComercialService) DeleteCaptado(ctx context.Context, id int) error {
	return s.CaptadoRepo.SoftDelete(ctx, id)
}

func (s *ComercialService) ListComisiones(ctx context.Context, comercialID int) ([]models.Comision, error) {
	return s.ComisionRepo.ListByComercial(ctx, comercialID)
}

func (s *ComercialService) MarkComisionPagada(ctx context.Context, id int) error {
	return s.ComisionRepo.MarkPagada(ctx, id)
}

// AccrueForCliente books commission for the agent who captured the client,
// at the configured rate, into the month bucket of the given date. Clients
// without attribution accrue nothing; that is not an error.
func (s *ComercialService) AccrueForCliente(ctx context.Context, clienteID int, litros float64, fecha time.Time) {
	if litros <= 0 {
		return
	}

	comercialID, err := s.CaptadoRepo.ComercialForCliente(ctx, clienteID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logrus.Warnf("AccrueForCliente: attribution lookup failed for cliente %d: %v", clienteID, err)
		}
		return
	}

	com := &models.Comision{
		ComercialID: comercialID,
		ClienteID:   clienteID,
		Litros:      litros,
		Importe:     litros * s.tarifaPorLitro,
		Mes:         fecha.In(timeutil.Madrid).Format(timeutil.MesLayout),
	}
	if err := s.ComisionRepo.Accrue(ctx, com); err != nil {
		logrus.Warnf("AccrueForCliente: accrual failed for comercial %d cliente %d: %v", comercialID, clienteID, err)
	}
}
