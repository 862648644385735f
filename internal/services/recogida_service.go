package services

import (
	"context"
	"errors"
	"sync"

	"oleo-backend/internal/cache"
	"oleo-backend/internal/metrics"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// ErrRutaNoEncontrada is returned when a batch completion references a
// route that does not exist.
var ErrRutaNoEncontrada = errors.New("ruta no encontrada")

type RecogidaService struct {
	RecogidaRepo *repositories.RecogidaRepository
	RutaRepo     *repositories.RutaRepository
	UsuarioRepo  *repositories.UsuarioRepository
	CaptadoRepo  *repositories.ClienteCaptadoRepository

	comercialSvc *ComercialService
}

func NewRecogidaService(
	recogidaRepo *repositories.RecogidaRepository,
	rutaRepo *repositories.RutaRepository,
	usuarioRepo *repositories.UsuarioRepository,
	captadoRepo *repositories.ClienteCaptadoRepository,
) *RecogidaService {
	return &RecogidaService{
		RecogidaRepo: recogidaRepo,
		RutaRepo:     rutaRepo,
		UsuarioRepo:  usuarioRepo,
		CaptadoRepo:  captadoRepo,
	}
}

// SetComercialService wires commission accrual into batch completion.
func (s *RecogidaService) SetComercialService(svc *ComercialService) {
	s.comercialSvc = svc
}

func (s *RecogidaService) CreateRecogida(ctx context.Context, req *models.CreateRecogidaRequest) (*models.Recogida, error) {
	if req.RutaID == 0 || req.ClienteID == 0 {
		return nil, errors.New("ruta_id and cliente_id are required")
	}

	rec := &models.Recogida{
		RutaID:          req.RutaID,
		ClienteID:       req.ClienteID,
		LitrosRecogidos: req.LitrosRecogidos,
		Distrito:        req.Distrito,
		Direccion:       req.Direccion,
		Fecha:           timeutil.Now(),
		EstadoRecogida:  models.EstadoPendiente,
	}

	if err := s.RecogidaRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	cache.InvalidateRecogidaCaches(ctx)
	return rec, nil
}

func (s *RecogidaService) ListRecogidas(ctx context.Context) ([]models.Recogida, error) {
	return s.RecogidaRepo.List(ctx)
}

func (s *RecogidaService) ListByRuta(ctx context.Context, rutaID int) ([]models.Recogida, error) {
	return s.RecogidaRepo.ListByRuta(ctx, rutaID)
}

func (s *RecogidaService) ListByCliente(ctx context.Context, clienteID int) ([]models.Recogida, error) {
	return s.RecogidaRepo.ListByCliente(ctx, clienteID)
}

func (s *RecogidaService) UpdateRecogida(ctx context.Context, id int, req *models.UpdateRecogidaRequest) (*models.Recogida, error) {
	rec, err := s.RecogidaRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldLitros := rec.LitrosRecogidos
	rec.LitrosRecogidos = req.LitrosRecogidos
	if req.EstadoRecogida != "" {
		rec.EstadoRecogida = req.EstadoRecogida
	}
	rec.Completada = rec.EstadoRecogida == models.EstadoCompletada
	if rec.Completada && rec.FechaCompletada == nil {
		now := timeutil.Now()
		rec.FechaCompletada = &now
	}

	if err := s.RecogidaRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	// Manual edits only move the lifetime counter, not the captured-client
	// attribution counter. See the batch routine for the reconciled path.
	if delta := rec.LitrosRecogidos - oldLitros; delta != 0 {
		s.UsuarioRepo.AddLitros(ctx, rec.ClienteID, delta)
	}

	cache.InvalidateRecogidaCaches(ctx)
	return rec, nil
}

func (s *RecogidaService) DeleteRecogida(ctx context.Context, id int) error {
	if err := s.RecogidaRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateRecogidaCaches(ctx)
	return nil
}

// CompletarRuta synchronizes every pickup record belonging to a route with
// the route's current client list and marks them completed.
//
// When no records exist yet, one completed record is created per route
// client with liters above zero. When records exist, each one takes the
// liters its client currently has on the route (0 if delisted) and is
// stamped completed. All writes for one invocation are issued concurrently
// and the routine waits for all of them; on any failure it returns the
// first error with no rollback of writes that already landed.
//
// Concurrent invocations for the same route are rejected with
// repositories.ErrVersionConflict instead of racing.
func (s *RecogidaService) CompletarRuta(ctx context.Context, rutaID int) error {
	ruta, err := s.RutaRepo.Get(ctx, rutaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logrus.Warnf("CompletarRuta: ruta %d no encontrada", rutaID)
			return ErrRutaNoEncontrada
		}
		return err
	}

	if err := s.RutaRepo.ClaimReconciliation(ctx, ruta.ID, ruta.Version); err != nil {
		return err
	}

	existentes, err := s.RecogidaRepo.ListByRuta(ctx, rutaID)
	if err != nil {
		return err
	}

	now := timeutil.Now()
	litrosPorCliente := make(map[int]float64, len(ruta.Clientes))
	for _, c := range ruta.Clientes {
		litrosPorCliente[c.ClienteID] = c.Litros
	}

	// deltas holds the per-client movement applied to the lifetime and
	// attribution counters after the fan-out settles.
	deltas := make(map[int]float64)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	if len(existentes) == 0 {
		for _, c := range ruta.Clientes {
			if c.Litros <= 0 {
				continue
			}
			deltas[c.ClienteID] += c.Litros

			rec := &models.Recogida{
				RutaID:          ruta.ID,
				ClienteID:       c.ClienteID,
				LitrosRecogidos: c.Litros,
				Distrito:        ruta.Distrito,
				Direccion:       c.Direccion,
				Fecha:           now,
				EstadoRecogida:  models.EstadoCompletada,
				Completada:      true,
				FechaCompletada: &now,
			}
			wg.Add(1)
			go func(rec *models.Recogida) {
				defer wg.Done()
				if err := s.RecogidaRepo.Create(ctx, rec); err != nil {
					fail(err)
				}
			}(rec)
		}
	} else {
		for i := range existentes {
			rec := existentes[i]
			litros := litrosPorCliente[rec.ClienteID] // 0 if delisted
			deltas[rec.ClienteID] += litros - rec.LitrosRecogidos

			wg.Add(1)
			go func(id int, litros float64) {
				defer wg.Done()
				if err := s.RecogidaRepo.Complete(ctx, id, litros, now); err != nil {
					fail(err)
				}
			}(rec.ID, litros)
		}
	}

	wg.Wait()

	if firstErr != nil {
		logrus.Errorf("CompletarRuta: ruta %d batch write failed: %v", rutaID, firstErr)
		return firstErr
	}

	// Roll the lifetime and attribution counters forward. These are
	// secondary writes; failures are logged and do not fail the batch.
	for clienteID, delta := range deltas {
		if delta == 0 {
			continue
		}
		if err := s.UsuarioRepo.AddLitros(ctx, clienteID, delta); err != nil {
			logrus.Warnf("CompletarRuta: litros_aportados update failed for cliente %d: %v", clienteID, err)
		}
		if err := s.CaptadoRepo.AddLitrosByCliente(ctx, clienteID, delta); err != nil {
			logrus.Warnf("CompletarRuta: captado counter update failed for cliente %d: %v", clienteID, err)
		}
		if s.comercialSvc != nil && delta > 0 {
			s.comercialSvc.AccrueForCliente(ctx, clienteID, delta, now)
		}
	}

	var litrosTotales float64
	for _, c := range ruta.Clientes {
		litrosTotales += c.Litros
	}
	if err := s.RutaRepo.MarkCompletada(ctx, ruta.ID, litrosTotales, now); err != nil {
		return err
	}

	metrics.RecogidasCompletadasTotal.Add(float64(len(ruta.Clientes)))
	metrics.LitrosRecogidosTotal.Add(litrosTotales)
	cache.InvalidateRecogidaCaches(ctx)

	return nil
}
