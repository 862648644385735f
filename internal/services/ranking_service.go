package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"oleo-backend/internal/cache"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
)

// ConstruirRanking folds pickup records into per-client leaderboard entries
// and assigns global, per-district and per-type positions.
//
// Records without a cliente_id or without liters are skipped entirely, not
// counted as zero. Sorts are stable: clients with equal liters keep their
// first-appearance order from the pickup list. Client metadata (nombre,
// distrito, tipo) comes from the clientes index when present, falling back
// to the record's own district.
func ConstruirRanking(recogidas []models.Recogida, clientes map[int]*models.Usuario) []models.ClienteRanking {
	byCliente := make(map[int]*models.ClienteRanking)
	var orden []int

	for _, r := range recogidas {
		if r.ClienteID == 0 || r.LitrosRecogidos == 0 {
			continue
		}
		entry, ok := byCliente[r.ClienteID]
		if !ok {
			entry = &models.ClienteRanking{ClienteID: r.ClienteID, Distrito: r.Distrito}
			if c, ok := clientes[r.ClienteID]; ok {
				entry.Nombre = c.Nombre
				entry.Tipo = c.Tipo
				if c.Distrito != "" {
					entry.Distrito = c.Distrito
				}
			}
			byCliente[r.ClienteID] = entry
			orden = append(orden, r.ClienteID)
		}
		entry.LitrosTotales += r.LitrosRecogidos
		entry.RecogidasCount++
	}

	ranking := make([]models.ClienteRanking, 0, len(orden))
	for _, id := range orden {
		ranking = append(ranking, *byCliente[id])
	}

	// Global positions
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].LitrosTotales > ranking[j].LitrosTotales
	})
	for i := range ranking {
		ranking[i].Ranking = i + 1
	}

	asignarParticion(ranking, func(e models.ClienteRanking) string { return e.Distrito },
		func(e *models.ClienteRanking, pos int) { e.RankingDistrito = pos })
	asignarParticion(ranking, func(e models.ClienteRanking) string { return e.Tipo },
		func(e *models.ClienteRanking, pos int) { e.RankingTipo = pos })

	return ranking
}

// asignarParticion groups entries by key, sorts each group stably by liters
// descending, and assigns 1-based positions within the group.
func asignarParticion(ranking []models.ClienteRanking, key func(models.ClienteRanking) string, set func(*models.ClienteRanking, int)) {
	grupos := make(map[string][]int)
	var claves []string
	for i, e := range ranking {
		k := key(e)
		if _, ok := grupos[k]; !ok {
			claves = append(claves, k)
		}
		grupos[k] = append(grupos[k], i)
	}
	for _, k := range claves {
		idx := grupos[k]
		sort.SliceStable(idx, func(a, b int) bool {
			return ranking[idx[a]].LitrosTotales > ranking[idx[b]].LitrosTotales
		})
		for pos, i := range idx {
			set(&ranking[i], pos+1)
		}
	}
}

type RankingService struct {
	RecogidaRepo *repositories.RecogidaRepository
	UsuarioRepo  *repositories.UsuarioRepository
}

func NewRankingService(recogidaRepo *repositories.RecogidaRepository, usuarioRepo *repositories.UsuarioRepository) *RankingService {
	return &RankingService{RecogidaRepo: recogidaRepo, UsuarioRepo: usuarioRepo}
}

// RankingGlobal recomputes the full leaderboard from all pickup records,
// serving a cached copy when one is fresh.
func (s *RankingService) RankingGlobal(ctx context.Context) ([]models.ClienteRanking, error) {
	if data, ok := cache.GetCached(ctx, cache.RankingGlobalKey); ok {
		var ranking []models.ClienteRanking
		if err := json.Unmarshal(data, &ranking); err == nil {
			return ranking, nil
		}
	}

	recogidas, err := s.RecogidaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	clientes, err := s.clienteIndex(ctx)
	if err != nil {
		return nil, err
	}

	ranking := ConstruirRanking(recogidas, clientes)

	if data, err := json.Marshal(ranking); err == nil {
		cache.SetCached(ctx, cache.RankingGlobalKey, data, 10*time.Minute)
	}
	return ranking, nil
}

// RankingDistrito returns the leaderboard restricted to one district,
// ordered by the district position.
func (s *RankingService) RankingDistrito(ctx context.Context, distrito string) ([]models.ClienteRanking, error) {
	global, err := s.RankingGlobal(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.ClienteRanking
	for _, e := range global {
		if e.Distrito == distrito {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RankingDistrito < out[j].RankingDistrito
	})
	return out, nil
}

func (s *RankingService) clienteIndex(ctx context.Context) (map[int]*models.Usuario, error) {
	usuarios, err := s.UsuarioRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int]*models.Usuario, len(usuarios))
	for _, u := range usuarios {
		index[u.ID] = u
	}
	return index, nil
}
