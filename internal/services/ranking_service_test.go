package services

import (
	"testing"

	"oleo-backend/internal/models"
)

func TestConstruirRankingAggregatesPerClient(t *testing.T) {
	recogidas := []models.Recogida{
		{ClienteID: 1, LitrosRecogidos: 10, Distrito: "Centro"},
		{ClienteID: 2, LitrosRecogidos: 25, Distrito: "Retiro"},
		{ClienteID: 1, LitrosRecogidos: 5, Distrito: "Centro"},
		{ClienteID: 3, LitrosRecogidos: 20, Distrito: "Centro"},
	}
	clientes := map[int]*models.Usuario{
		1: {ID: 1, Nombre: "Bar Paco", Tipo: "restaurante"},
		2: {ID: 2, Nombre: "Hotel Sol", Tipo: "hotel"},
		3: {ID: 3, Nombre: "Casa Ana", Tipo: "restaurante"},
	}

	ranking := ConstruirRanking(recogidas, clientes)
	if len(ranking) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranking))
	}

	// Liters are conserved: the leaderboard total equals the record total
	var total float64
	for _, e := range ranking {
		total += e.LitrosTotales
	}
	if total != 60 {
		t.Fatalf("litros not conserved: got %v", total)
	}

	// Descending by liters: 25, 20, 15
	if ranking[0].ClienteID != 2 || ranking[0].Ranking != 1 {
		t.Fatalf("expected cliente 2 first, got %+v", ranking[0])
	}
	if ranking[1].ClienteID != 3 || ranking[1].Ranking != 2 {
		t.Fatalf("expected cliente 3 second, got %+v", ranking[1])
	}
	if ranking[2].ClienteID != 1 || ranking[2].LitrosTotales != 15 || ranking[2].RecogidasCount != 2 {
		t.Fatalf("expected cliente 1 aggregated to 15 over 2 records, got %+v", ranking[2])
	}

	if ranking[2].Nombre != "Bar Paco" {
		t.Fatalf("expected metadata from the client index")
	}

	// Per-district positions: Centro has clientes 3 (20) and 1 (15)
	for _, e := range ranking {
		switch e.ClienteID {
		case 3:
			if e.RankingDistrito != 1 {
				t.Fatalf("cliente 3 should lead Centro, got %d", e.RankingDistrito)
			}
		case 1:
			if e.RankingDistrito != 2 {
				t.Fatalf("cliente 1 should be second in Centro, got %d", e.RankingDistrito)
			}
		case 2:
			if e.RankingDistrito != 1 {
				t.Fatalf("cliente 2 should lead Retiro, got %d", e.RankingDistrito)
			}
		}
	}

	// Per-type positions: restaurante has clientes 3 (20) and 1 (15)
	for _, e := range ranking {
		if e.ClienteID == 1 && e.RankingTipo != 2 {
			t.Fatalf("cliente 1 should be second among restaurantes, got %d", e.RankingTipo)
		}
	}
}

func TestConstruirRankingSkipsIncompleteRecords(t *testing.T) {
	recogidas := []models.Recogida{
		{ClienteID: 0, LitrosRecogidos: 50},
		{ClienteID: 1, LitrosRecogidos: 0},
		{ClienteID: 1, LitrosRecogidos: 10},
	}

	ranking := ConstruirRanking(recogidas, nil)
	if len(ranking) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(ranking))
	}
	if ranking[0].LitrosTotales != 10 || ranking[0].RecogidasCount != 1 {
		t.Fatalf("zero-liter record should not count: %+v", ranking[0])
	}
}

func TestConstruirRankingTiesKeepFirstAppearanceOrder(t *testing.T) {
	recogidas := []models.Recogida{
		{ClienteID: 5, LitrosRecogidos: 10},
		{ClienteID: 3, LitrosRecogidos: 10},
		{ClienteID: 9, LitrosRecogidos: 10},
	}

	ranking := ConstruirRanking(recogidas, nil)
	want := []int{5, 3, 9}
	for i, e := range ranking {
		if e.ClienteID != want[i] {
			t.Fatalf("tie order broken at %d: got cliente %d, want %d", i, e.ClienteID, want[i])
		}
		if e.Ranking != i+1 {
			t.Fatalf("positions must be 1-based and sequential")
		}
	}
}

func TestConstruirRankingDeterministic(t *testing.T) {
	recogidas := []models.Recogida{
		{ClienteID: 1, LitrosRecogidos: 8, Distrito: "Centro"},
		{ClienteID: 2, LitrosRecogidos: 8, Distrito: "Centro"},
		{ClienteID: 3, LitrosRecogidos: 12, Distrito: "Retiro"},
	}

	first := ConstruirRanking(recogidas, nil)
	for i := 0; i < 20; i++ {
		again := ConstruirRanking(recogidas, nil)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d differs at entry %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestConstruirRankingDistritoFallback(t *testing.T) {
	recogidas := []models.Recogida{
		{ClienteID: 1, LitrosRecogidos: 5, Distrito: "Centro"},
		{ClienteID: 2, LitrosRecogidos: 5, Distrito: "Centro"},
	}
	clientes := map[int]*models.Usuario{
		// Cliente 1 has its own district; cliente 2 falls back to the record's
		1: {ID: 1, Distrito: "Chamberí"},
		2: {ID: 2},
	}

	ranking := ConstruirRanking(recogidas, clientes)
	for _, e := range ranking {
		if e.ClienteID == 1 && e.Distrito != "Chamberí" {
			t.Fatalf("client district should win, got %q", e.Distrito)
		}
		if e.ClienteID == 2 && e.Distrito != "Centro" {
			t.Fatalf("expected record district fallback, got %q", e.Distrito)
		}
	}
}
