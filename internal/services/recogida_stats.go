package services

import "oleo-backend/internal/models"

// Pure, in-memory views over already-loaded pickup lists. All functions are
// total: empty or nil input yields a zero value, never an error or NaN.

// FiltrarPorCliente returns every record whose cliente_id matches directly,
// or whose route client snapshot contains the client.
func FiltrarPorCliente(recogidas []models.Recogida, clienteID int) []models.Recogida {
	if clienteID == 0 || len(recogidas) == 0 {
		return nil
	}
	var out []models.Recogida
	for _, r := range recogidas {
		if r.ClienteID == clienteID {
			out = append(out, r)
			continue
		}
		for _, c := range r.RutaClientes {
			if c.ClienteID == clienteID {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FiltrarPorRuta returns every record whose ruta_id matches exactly.
// Input order is preserved; this is a filter, not a sort.
func FiltrarPorRuta(recogidas []models.Recogida, rutaID int) []models.Recogida {
	if rutaID == 0 || len(recogidas) == 0 {
		return nil
	}
	var out []models.Recogida
	for _, r := range recogidas {
		if r.RutaID == rutaID {
			out = append(out, r)
		}
	}
	return out
}

// TotalLitros sums litros_recogidos across all records; a missing value
// counts as 0.
func TotalLitros(recogidas []models.Recogida) float64 {
	var total float64
	for _, r := range recogidas {
		total += r.LitrosRecogidos
	}
	return total
}

// TotalLitrosRuta is TotalLitros restricted to one route.
func TotalLitrosRuta(recogidas []models.Recogida, rutaID int) float64 {
	var total float64
	for _, r := range recogidas {
		if r.RutaID == rutaID {
			total += r.LitrosRecogidos
		}
	}
	return total
}

// LitrosPorDistrito maps district name to summed liters, including only
// records with both a district and a non-zero liter amount.
func LitrosPorDistrito(recogidas []models.Recogida) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range recogidas {
		if r.Distrito == "" || r.LitrosRecogidos == 0 {
			continue
		}
		out[r.Distrito] += r.LitrosRecogidos
	}
	return out
}

// MediaLitrosRecogidaCompletada is the mean of litros_recogidos over
// completed records. A record counts as completed when estado_recogida is
// "completada" or the legacy completada flag is set. Returns 0 when no
// record qualifies.
func MediaLitrosRecogidaCompletada(recogidas []models.Recogida) float64 {
	var total float64
	var count int
	for _, r := range recogidas {
		if r.EstadoRecogida == models.EstadoCompletada || r.Completada {
			total += r.LitrosRecogidos
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// MediaLitrosPorPeriodo divides the total by a fixed 30-day period. The
// divisor is intentionally not calendar-aware; dashboards publish this
// number as "liters per month".
func MediaLitrosPorPeriodo(recogidas []models.Recogida) float64 {
	return TotalLitros(recogidas) / 30
}
