package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"oleo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func newRecogidaServiceWithMock(t *testing.T) (*RecogidaService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	svc := NewRecogidaService(
		repositories.NewRecogidaRepository(mock),
		repositories.NewRutaRepository(mock),
		repositories.NewUsuarioRepository(mock),
		repositories.NewClienteCaptadoRepository(mock),
	)
	return svc, mock
}

func expectRutaGet(mock pgxmock.PgxPoolIface, rutaID, version int, clientes [][3]any) {
	now := time.Now()
	mock.ExpectQuery(`SELECT id, nombre, distrito, barrios, fecha, completada, litros_totales,`).
		WithArgs(rutaID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "nombre", "distrito", "barrios", "fecha", "completada", "litros_totales",
			"fecha_completada", "version", "activo", "created_at", "updated_at",
		}).AddRow(rutaID, "Ruta Centro", "Centro", []string{"Sol"}, nil, false, 0.0, nil, version, true, now, now))

	rows := pgxmock.NewRows([]string{"ruta_id", "cliente_id", "nombre", "direccion", "litros", "posicion"})
	for i, c := range clientes {
		rows.AddRow(rutaID, c[0], c[1], "Calle Mayor 1", c[2], i+1)
	}
	mock.ExpectQuery(`FROM ruta_clientes WHERE ruta_id=\$1`).
		WithArgs(rutaID).
		WillReturnRows(rows)
}

var recogidaListColumns = []string{
	"id", "ruta_id", "cliente_id", "litros_recogidos", "distrito", "direccion",
	"fecha", "estado_recogida", "completada", "fecha_completada", "created_at", "updated_at",
}

// First completion of a route with no records yet: one completed record per
// route client with liters, counters rolled forward, route stamped.
func TestCompletarRutaCreatesRecords(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()
	mock.MatchExpectationsInOrder(false)

	expectRutaGet(mock, 1, 3, [][3]any{
		{7, "Bar Paco", 10.0},
		{8, "Hotel Sol", 5.0},
		{9, "Casa Ana", 0.0}, // no liters, no record
	})

	mock.ExpectExec(`UPDATE rutas SET version=version\+1`).
		WithArgs(1, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectQuery(`FROM recogidas WHERE activo AND ruta_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(recogidaListColumns))

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO recogidas`).
		WithArgs(1, 7, 10.0, "Centro", "Calle Mayor 1",
			pgxmock.AnyArg(), "completada", true, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(101, now, now))
	mock.ExpectQuery(`INSERT INTO recogidas`).
		WithArgs(1, 8, 5.0, "Centro", "Calle Mayor 1",
			pgxmock.AnyArg(), "completada", true, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(102, now, now))

	mock.ExpectExec(`UPDATE usuarios SET litros_aportados=litros_aportados\+\$1`).
		WithArgs(10.0, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE usuarios SET litros_aportados=litros_aportados\+\$1`).
		WithArgs(5.0, 8).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE clientes_captados SET litros_recogidos=litros_recogidos\+\$1`).
		WithArgs(10.0, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE clientes_captados SET litros_recogidos=litros_recogidos\+\$1`).
		WithArgs(5.0, 8).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`UPDATE rutas SET completada=TRUE`).
		WithArgs(15.0, pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := svc.CompletarRuta(context.Background(), 1); err != nil {
		t.Fatalf("CompletarRuta: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Re-completion with existing records: each record takes the liters its
// client currently has on the route, delisted clients drop to 0, and the
// counters move by the delta only.
func TestCompletarRutaReconcilesExisting(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()
	mock.MatchExpectationsInOrder(false)

	expectRutaGet(mock, 1, 5, [][3]any{
		{7, "Bar Paco", 10.0},
	})

	mock.ExpectExec(`UPDATE rutas SET version=version\+1`).
		WithArgs(1, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	now := time.Now()
	mock.ExpectQuery(`FROM recogidas WHERE activo AND ruta_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(recogidaListColumns).
			AddRow(201, 1, 7, 4.0, "Centro", "Calle Mayor 1", now, "pendiente", false, nil, now, now).
			AddRow(202, 1, 9, 2.0, "Centro", "Calle Luna 2", now, "pendiente", false, nil, now, now))

	// Cliente 7: 4 -> 10, cliente 9 was delisted: 2 -> 0
	mock.ExpectExec(`UPDATE recogidas SET litros_recogidos=\$1, estado_recogida=\$2, completada=TRUE`).
		WithArgs(10.0, "completada", pgxmock.AnyArg(), 201).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE recogidas SET litros_recogidos=\$1, estado_recogida=\$2, completada=TRUE`).
		WithArgs(0.0, "completada", pgxmock.AnyArg(), 202).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`UPDATE usuarios SET litros_aportados=litros_aportados\+\$1`).
		WithArgs(6.0, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE usuarios SET litros_aportados=litros_aportados\+\$1`).
		WithArgs(-2.0, 9).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE clientes_captados SET litros_recogidos=litros_recogidos\+\$1`).
		WithArgs(6.0, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE clientes_captados SET litros_recogidos=litros_recogidos\+\$1`).
		WithArgs(-2.0, 9).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`UPDATE rutas SET completada=TRUE`).
		WithArgs(10.0, pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := svc.CompletarRuta(context.Background(), 1); err != nil {
		t.Fatalf("CompletarRuta: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Running the batch again with nothing changed moves no counters.
func TestCompletarRutaIdempotentOnRerun(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()
	mock.MatchExpectationsInOrder(false)

	expectRutaGet(mock, 1, 6, [][3]any{
		{7, "Bar Paco", 10.0},
	})

	mock.ExpectExec(`UPDATE rutas SET version=version\+1`).
		WithArgs(1, 6).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	now := time.Now()
	mock.ExpectQuery(`FROM recogidas WHERE activo AND ruta_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(recogidaListColumns).
			AddRow(201, 1, 7, 10.0, "Centro", "Calle Mayor 1", now, "completada", true, &now, now, now))

	mock.ExpectExec(`UPDATE recogidas SET litros_recogidos=\$1, estado_recogida=\$2, completada=TRUE`).
		WithArgs(10.0, "completada", pgxmock.AnyArg(), 201).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`UPDATE rutas SET completada=TRUE`).
		WithArgs(10.0, pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := svc.CompletarRuta(context.Background(), 1); err != nil {
		t.Fatalf("CompletarRuta: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompletarRutaNotFound(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, nombre, distrito, barrios, fecha, completada, litros_totales,`).
		WithArgs(99).
		WillReturnError(pgx.ErrNoRows)

	err := svc.CompletarRuta(context.Background(), 99)
	if !errors.Is(err, ErrRutaNoEncontrada) {
		t.Fatalf("expected ErrRutaNoEncontrada, got %v", err)
	}
}

func TestCompletarRutaVersionConflict(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()

	expectRutaGet(mock, 1, 3, [][3]any{
		{7, "Bar Paco", 10.0},
	})

	// Another reconciliation bumped the version first: zero rows updated
	mock.ExpectExec(`UPDATE rutas SET version=version\+1`).
		WithArgs(1, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := svc.CompletarRuta(context.Background(), 1)
	if !errors.Is(err, repositories.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompletarRutaBatchWriteFailure(t *testing.T) {
	svc, mock := newRecogidaServiceWithMock(t)
	defer mock.Close()
	mock.MatchExpectationsInOrder(false)

	expectRutaGet(mock, 1, 2, [][3]any{
		{7, "Bar Paco", 10.0},
	})

	mock.ExpectExec(`UPDATE rutas SET version=version\+1`).
		WithArgs(1, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectQuery(`FROM recogidas WHERE activo AND ruta_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(recogidaListColumns))

	writeErr := errors.New("write failed")
	mock.ExpectQuery(`INSERT INTO recogidas`).
		WithArgs(1, 7, 10.0, "Centro", "Calle Mayor 1",
			pgxmock.AnyArg(), "completada", true, pgxmock.AnyArg()).
		WillReturnError(writeErr)

	err := svc.CompletarRuta(context.Background(), 1)
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected the batch write error, got %v", err)
	}
}
