package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"oleo-backend/internal/repositories"
	"oleo-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders PDF impact certificates and district summaries.
type ReportService struct {
	RecogidaRepo *repositories.RecogidaRepository
	UsuarioRepo  *repositories.UsuarioRepository
}

func NewReportService(recogidaRepo *repositories.RecogidaRepository, usuarioRepo *repositories.UsuarioRepository) *ReportService {
	return &ReportService{RecogidaRepo: recogidaRepo, UsuarioRepo: usuarioRepo}
}

// CertificadoImpacto renders the impact certificate for one client: their
// lifetime volume and the derived environmental figures.
func (s *ReportService) CertificadoImpacto(ctx context.Context, clienteID int) ([]byte, error) {
	u, err := s.UsuarioRepo.Get(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente not found: %w", err)
	}

	recogidas, err := s.RecogidaRepo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	litros := TotalLitros(recogidas)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 12, "Certificado de Impacto Ambiental", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Emitido: %s", timeutil.Now().Format("02-01-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFillColor(230, 240, 230)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Datos del participante", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Nombre: %s %s", u.Nombre, u.Apellidos), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Distrito: %s", u.Distrito), "RB", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Impacto acumulado", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Aceite reciclado: %.1f L", litros), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("CO2 evitado: %.1f kg", litros*CO2PorLitroKg), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Agua protegida: %.0f L", litros*AguaPorLitroL), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Recogidas registradas: %d", len(recogidas)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResumenDistritos renders the per-district volume summary for the
// back-office.
func (s *ReportService) ResumenDistritos(ctx context.Context) ([]byte, error) {
	recogidas, err := s.RecogidaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	porDistrito := LitrosPorDistrito(recogidas)

	distritos := make([]string, 0, len(porDistrito))
	for d := range porDistrito {
		distritos = append(distritos, d)
	}
	sort.Strings(distritos)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Resumen por distrito", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generado: %s", timeutil.Now().Format("02-01-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, "Distrito", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Litros", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, d := range distritos {
		pdf.CellFormat(95, 6, d, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, fmt.Sprintf("%.1f", porDistrito[d]), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("%.1f", TotalLitros(recogidas)), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
