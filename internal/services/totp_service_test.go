package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/pquerna/otp/totp"
)

func newTOTPServiceWithMock(t *testing.T) (*TOTPService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	svc := NewTOTPService(
		repositories.NewUsuarioRepository(mock),
		repositories.NewTOTPRepository(mock),
		testJWTManager(),
	)
	return svc, mock
}

func TestGenerateSetup(t *testing.T) {
	svc, mock := newTOTPServiceWithMock(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO totp_secrets`).
		WithArgs(1, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp, err := svc.GenerateSetup(context.Background(), &models.Usuario{ID: 1, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if resp.Secret == "" {
		t.Fatalf("expected a secret")
	}
	if !strings.HasPrefix(resp.QRCode, "data:image/png;base64,") {
		t.Fatalf("expected an inline QR code")
	}
	if resp.AccountName != "admin@example.com" {
		t.Fatalf("account name mismatch: %q", resp.AccountName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyAndEnable(t *testing.T) {
	svc, mock := newTOTPServiceWithMock(t)
	defer mock.Close()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "t", AccountName: "a@b.c"})
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	mock.ExpectQuery(`FROM totp_secrets WHERE user_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "secret", "enabled", "created_at"}).
			AddRow(1, key.Secret(), false, time.Now()))
	mock.ExpectExec(`UPDATE totp_secrets SET enabled=TRUE`).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := svc.VerifyAndEnable(context.Background(), 1, code); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyAndEnableRejectsBadCode(t *testing.T) {
	svc, mock := newTOTPServiceWithMock(t)
	defer mock.Close()

	key, _ := totp.Generate(totp.GenerateOpts{Issuer: "t", AccountName: "a@b.c"})
	mock.ExpectQuery(`FROM totp_secrets WHERE user_id=\$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "secret", "enabled", "created_at"}).
			AddRow(1, key.Secret(), false, time.Now()))

	err := svc.VerifyAndEnable(context.Background(), 1, "000000")
	if !errors.Is(err, ErrInvalidTOTPCode) {
		t.Fatalf("expected ErrInvalidTOTPCode, got %v", err)
	}
}

func TestVerifyLoginExchangesTempToken(t *testing.T) {
	svc, mock := newTOTPServiceWithMock(t)
	defer mock.Close()

	user := &models.Usuario{ID: 3, Email: "admin@example.com", Rol: "admin"}
	tempToken, err := svc.JWT.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("temp token: %v", err)
	}

	key, _ := totp.Generate(totp.GenerateOpts{Issuer: "t", AccountName: user.Email})
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	mock.ExpectQuery(`FROM totp_secrets WHERE user_id=\$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "secret", "enabled", "created_at"}).
			AddRow(3, key.Secret(), true, time.Now()))
	mock.ExpectQuery(`FROM usuarios WHERE id=\$1`).
		WithArgs(3).
		WillReturnRows(usuarioRow(3, "admin@example.com", "x", "admin", true))

	resp, err := svc.VerifyLogin(context.Background(), tempToken, code)
	if err != nil {
		t.Fatalf("verify login: %v", err)
	}
	if resp.Token == "" || resp.Usuario == nil {
		t.Fatalf("expected a full session, got %+v", resp)
	}

	// The issued token must be a real session token
	if _, err := svc.JWT.ValidateToken(resp.Token); err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
}

func TestVerifyLoginRejectsSessionToken(t *testing.T) {
	svc, mock := newTOTPServiceWithMock(t)
	defer mock.Close()

	session, _ := svc.JWT.GenerateToken(&models.Usuario{ID: 3, Email: "admin@example.com", Rol: "admin"})
	if _, err := svc.VerifyLogin(context.Background(), session, "123456"); err == nil {
		t.Fatalf("full session token must not pass the temp-token check")
	}
}
