package services

import (
	"testing"

	"oleo-backend/internal/models"
)

func TestFiltrarPorCliente(t *testing.T) {
	recogidas := []models.Recogida{
		{ID: 1, ClienteID: 7, LitrosRecogidos: 10},
		{ID: 2, ClienteID: 8, LitrosRecogidos: 5},
		{ID: 3, ClienteID: 0, RutaClientes: []models.RutaCliente{{ClienteID: 7}}},
		{ID: 4, ClienteID: 0, RutaClientes: []models.RutaCliente{{ClienteID: 9}}},
	}

	out := FiltrarPorCliente(recogidas, 7)
	if len(out) != 2 {
		t.Fatalf("expected 2 records for cliente 7, got %d", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("unexpected records: %v, %v", out[0].ID, out[1].ID)
	}

	if out := FiltrarPorCliente(recogidas, 0); out != nil {
		t.Fatalf("cliente 0 should match nothing")
	}
	if out := FiltrarPorCliente(nil, 7); out != nil {
		t.Fatalf("nil input should yield nil")
	}
}

func TestFiltrarPorRuta(t *testing.T) {
	recogidas := []models.Recogida{
		{ID: 1, RutaID: 2},
		{ID: 2, RutaID: 1},
		{ID: 3, RutaID: 2},
	}

	out := FiltrarPorRuta(recogidas, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	// Input order is preserved
	if out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("filter reordered records")
	}

	if out := FiltrarPorRuta(recogidas, 99); out != nil {
		t.Fatalf("unknown route should match nothing")
	}
}

func TestTotalLitros(t *testing.T) {
	recogidas := []models.Recogida{
		{LitrosRecogidos: 10.5},
		{LitrosRecogidos: 0},
		{LitrosRecogidos: 4.5},
	}
	if got := TotalLitros(recogidas); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
	if got := TotalLitros(nil); got != 0 {
		t.Fatalf("empty input should total 0, got %v", got)
	}
}

func TestTotalLitrosRuta(t *testing.T) {
	recogidas := []models.Recogida{
		{RutaID: 1, LitrosRecogidos: 10},
		{RutaID: 2, LitrosRecogidos: 7},
		{RutaID: 1, LitrosRecogidos: 3},
	}
	if got := TotalLitrosRuta(recogidas, 1); got != 13 {
		t.Fatalf("expected 13, got %v", got)
	}
}

func TestLitrosPorDistrito(t *testing.T) {
	recogidas := []models.Recogida{
		{Distrito: "Centro", LitrosRecogidos: 10},
		{Distrito: "Centro", LitrosRecogidos: 5},
		{Distrito: "Chamberí", LitrosRecogidos: 2},
		{Distrito: "", LitrosRecogidos: 99},
		{Distrito: "Retiro", LitrosRecogidos: 0},
	}

	out := LitrosPorDistrito(recogidas)
	if len(out) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(out))
	}
	if out["Centro"] != 15 {
		t.Fatalf("Centro: expected 15, got %v", out["Centro"])
	}
	if out["Chamberí"] != 2 {
		t.Fatalf("Chamberí: expected 2, got %v", out["Chamberí"])
	}
	if _, ok := out["Retiro"]; ok {
		t.Fatalf("zero-liter district should be excluded")
	}
}

func TestMediaLitrosRecogidaCompletada(t *testing.T) {
	recogidas := []models.Recogida{
		{EstadoRecogida: models.EstadoCompletada, LitrosRecogidos: 10},
		{EstadoRecogida: models.EstadoPendiente, LitrosRecogidos: 100},
		{Completada: true, LitrosRecogidos: 2}, // legacy flag only
	}
	if got := MediaLitrosRecogidaCompletada(recogidas); got != 6 {
		t.Fatalf("expected 6, got %v", got)
	}

	// No completed records: 0, never NaN
	pendientes := []models.Recogida{{EstadoRecogida: models.EstadoPendiente, LitrosRecogidos: 5}}
	if got := MediaLitrosRecogidaCompletada(pendientes); got != 0 {
		t.Fatalf("expected 0 for no completed records, got %v", got)
	}
	if got := MediaLitrosRecogidaCompletada(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestMediaLitrosPorPeriodo(t *testing.T) {
	recogidas := []models.Recogida{
		{LitrosRecogidos: 45},
		{LitrosRecogidos: 15},
	}
	if got := MediaLitrosPorPeriodo(recogidas); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := MediaLitrosPorPeriodo(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}
