package services

import (
	"context"
	"testing"
	"time"

	"oleo-backend/internal/config"
	"oleo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func newComercialServiceWithMock(t *testing.T) (*ComercialService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	cfg := &config.Config{}
	cfg.Comisiones.TarifaPorLitro = 0.5
	svc := NewComercialService(
		repositories.NewClienteCaptadoRepository(mock),
		repositories.NewComisionRepository(mock),
		cfg,
	)
	return svc, mock
}

func TestAccrueForCliente(t *testing.T) {
	svc, mock := newComercialServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT comercial_id FROM clientes_captados`).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"comercial_id"}).AddRow(3))

	now := time.Now()
	// 12 liters at 0.5 EUR/l, booked into the August 2026 bucket
	mock.ExpectQuery(`INSERT INTO comisiones`).
		WithArgs(3, 7, 12.0, 6.0, "2026-08").
		WillReturnRows(pgxmock.NewRows([]string{"id", "litros", "importe", "pagada", "created_at", "updated_at"}).
			AddRow(1, 12.0, 6.0, false, now, now))

	fecha := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc.AccrueForCliente(context.Background(), 7, 12.0, fecha)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccrueForClienteWithoutAttribution(t *testing.T) {
	svc, mock := newComercialServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT comercial_id FROM clientes_captados`).
		WithArgs(7).
		WillReturnError(pgx.ErrNoRows)

	// No attribution means no accrual and no error
	svc.AccrueForCliente(context.Background(), 7, 12.0, time.Now())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccrueForClienteSkipsNonPositiveLiters(t *testing.T) {
	svc, mock := newComercialServiceWithMock(t)
	defer mock.Close()

	svc.AccrueForCliente(context.Background(), 7, 0, time.Now())
	svc.AccrueForCliente(context.Background(), 7, -3, time.Now())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
