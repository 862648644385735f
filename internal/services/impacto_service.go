package services

import (
	"context"
	"encoding/json"
	"time"

	"oleo-backend/internal/cache"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/stream"
	"oleo-backend/internal/timeutil"

	"github.com/sirupsen/logrus"
)

// Published conversion coefficients per liter of used oil.
const (
	CO2PorLitroKg = 3.0
	AguaPorLitroL = 1000.0
)

// ResumenImpacto is the aggregate published on the landing page and pushed
// over the live stream.
type ResumenImpacto struct {
	LitrosTotales        float64            `json:"litros_totales"`
	CO2EvitadoKg         float64            `json:"co2_evitado_kg"`
	AguaProtegidaL       float64            `json:"agua_protegida_l"`
	RecogidasCompletadas int                `json:"recogidas_completadas"`
	LitrosPorDistrito    map[string]float64 `json:"litros_por_distrito"`
	ActualizadoEn        time.Time          `json:"actualizado_en"`
}

type ImpactoService struct {
	RecogidaRepo *repositories.RecogidaRepository
	Hub          *stream.Hub
}

func NewImpactoService(recogidaRepo *repositories.RecogidaRepository, hub *stream.Hub) *ImpactoService {
	return &ImpactoService{RecogidaRepo: recogidaRepo, Hub: hub}
}

// Resumen computes the impact aggregate over all pickup records, serving a
// cached copy when fresh.
func (s *ImpactoService) Resumen(ctx context.Context) (*ResumenImpacto, error) {
	if data, ok := cache.GetCached(ctx, cache.ImpactoKey); ok {
		var resumen ResumenImpacto
		if err := json.Unmarshal(data, &resumen); err == nil {
			return &resumen, nil
		}
	}

	recogidas, err := s.RecogidaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resumen := construirResumen(recogidas)

	if data, err := json.Marshal(resumen); err == nil {
		cache.SetCached(ctx, cache.ImpactoKey, data, 5*time.Minute)
	}
	return resumen, nil
}

func construirResumen(recogidas []models.Recogida) *ResumenImpacto {
	litros := TotalLitros(recogidas)

	completadas := 0
	for _, r := range recogidas {
		if r.EstadoRecogida == models.EstadoCompletada || r.Completada {
			completadas++
		}
	}

	return &ResumenImpacto{
		LitrosTotales:        litros,
		CO2EvitadoKg:         litros * CO2PorLitroKg,
		AguaProtegidaL:       litros * AguaPorLitroL,
		RecogidasCompletadas: completadas,
		LitrosPorDistrito:    LitrosPorDistrito(recogidas),
		ActualizadoEn:        timeutil.Now(),
	}
}

// Publicar recomputes the aggregate and pushes it to every connected
// dashboard. Called after pickup mutations; failures are logged only.
func (s *ImpactoService) Publicar(ctx context.Context) {
	if s.Hub == nil {
		return
	}

	cache.InvalidateKeys(ctx, cache.ImpactoKey)
	resumen, err := s.Resumen(ctx)
	if err != nil {
		logrus.Warnf("Impacto: publish failed: %v", err)
		return
	}
	if data, err := json.Marshal(resumen); err == nil {
		s.Hub.Broadcast(data)
	}
}
