package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"oleo-backend/internal/auth"
	"oleo-backend/internal/config"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "oleo-backend-test"
	return auth.NewJWTManager(cfg)
}

func newUsuarioServiceWithMock(t *testing.T) (*UsuarioService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	svc := NewUsuarioService(
		repositories.NewUsuarioRepository(mock),
		repositories.NewTOTPRepository(mock),
		testJWTManager(),
	)
	return svc, mock
}

func usuarioRow(id int, email, hash, rol string, activo bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "nombre", "apellidos", "email", "password_hash", "rol", "telefono",
		"distrito", "barrio", "direccion", "tipo", "litros_aportados", "activo",
		"created_at", "updated_at",
	}).AddRow(id, "Ana", "García", email, hash, rol, "", "Centro", "", "", "restaurante", 0.0, activo, now, now)
}

func TestLoginSuccess(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("ana@example.com").
		WillReturnRows(usuarioRow(1, "ana@example.com", hash, "cliente", true))

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.Requires2FA {
		t.Fatalf("expected a session token, got %+v", resp)
	}
	if resp.Usuario == nil || resp.Usuario.ID != 1 {
		t.Fatalf("expected the user in the response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, _ := auth.HashPassword("secret123")
	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("ana@example.com").
		WillReturnRows(usuarioRow(1, "ana@example.com", hash, "cliente", true))

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrCredencialesInvalidas) {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("nadie@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nadie@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrCredencialesInvalidas) {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, _ := auth.HashPassword("secret123")
	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("baja@example.com").
		WillReturnRows(usuarioRow(2, "baja@example.com", hash, "cliente", false))

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "baja@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUsuarioInactivo) {
		t.Fatalf("expected ErrUsuarioInactivo, got %v", err)
	}
}

func TestLoginAdminWith2FAGetsTempToken(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, _ := auth.HashPassword("secret123")
	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("admin@example.com").
		WillReturnRows(usuarioRow(3, "admin@example.com", hash, "admin", true))

	mock.ExpectQuery(`FROM totp_secrets WHERE user_id=\$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "secret", "enabled", "created_at"}).
			AddRow(3, "JBSWY3DPEHPK3PXP", true, time.Now()))

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !resp.Requires2FA || resp.TempToken == "" {
		t.Fatalf("expected a 2FA challenge, got %+v", resp)
	}
	if resp.Token != "" || resp.Usuario != nil {
		t.Fatalf("session token must not be issued before the TOTP step")
	}
}

func TestLoginAdminWithout2FAGetsSessionToken(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, _ := auth.HashPassword("secret123")
	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("admin@example.com").
		WillReturnRows(usuarioRow(3, "admin@example.com", hash, "admin", true))

	mock.ExpectQuery(`FROM totp_secrets WHERE user_id=\$1`).
		WithArgs(3).
		WillReturnError(pgx.ErrNoRows)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Requires2FA || resp.Token == "" {
		t.Fatalf("admin without TOTP should log in directly, got %+v", resp)
	}
}

func TestSignupRejectsKnownEmail(t *testing.T) {
	svc, mock := newUsuarioServiceWithMock(t)
	defer mock.Close()

	hash, _ := auth.HashPassword("whatever")
	mock.ExpectQuery(`FROM usuarios WHERE email=\$1`).
		WithArgs("ana@example.com").
		WillReturnRows(usuarioRow(1, "ana@example.com", hash, "cliente", true))

	_, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailEnUso) {
		t.Fatalf("expected ErrEmailEnUso, got %v", err)
	}
}
