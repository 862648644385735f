package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"oleo-backend/internal/auth"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "ReciclaOleo"

var (
	ErrNoTOTPSecret    = errors.New("2FA setup not initiated")
	ErrInvalidTOTPCode = errors.New("invalid verification code")
	ErrTOTPNotEnabled  = errors.New("2FA is not enabled")
)

type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type TOTPService struct {
	UsuarioRepo *repositories.UsuarioRepository
	TOTPRepo    *repositories.TOTPRepository
	JWT         *auth.JWTManager
}

func NewTOTPService(usuarioRepo *repositories.UsuarioRepository, totpRepo *repositories.TOTPRepository, jwtManager *auth.JWTManager) *TOTPService {
	return &TOTPService{UsuarioRepo: usuarioRepo, TOTPRepo: totpRepo, JWT: jwtManager}
}

// GenerateSetup creates a new secret for the user and returns it together
// with an inline QR code. The secret stays disabled until VerifyAndEnable.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.Usuario) (*TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.TOTPRepo.Upsert(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable turns 2FA on after the user proves they captured the
// secret.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	t, err := s.TOTPRepo.Get(ctx, userID)
	if err != nil {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, t.Secret) {
		return ErrInvalidTOTPCode
	}
	return s.TOTPRepo.Enable(ctx, userID)
}

// VerifyLogin completes the second login step: it exchanges a valid temp
// token plus TOTP code for a full session token.
func (s *TOTPService) VerifyLogin(ctx context.Context, tempToken, code string) (*models.LoginResponse, error) {
	claims, err := s.JWT.ValidateTempToken(tempToken)
	if err != nil {
		return nil, err
	}

	t, err := s.TOTPRepo.Get(ctx, claims.UserID)
	if err != nil || !t.Enabled {
		return nil, ErrTOTPNotEnabled
	}
	if !totp.Validate(code, t.Secret) {
		return nil, ErrInvalidTOTPCode
	}

	u, err := s.UsuarioRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.Activo {
		return nil, ErrUsuarioInactivo
	}

	token, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, Usuario: u}, nil
}

// Disable removes the secret after the user verifies their password and a
// current code.
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	u, err := s.UsuarioRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return ErrCredencialesInvalidas
	}

	t, err := s.TOTPRepo.Get(ctx, userID)
	if err != nil {
		return ErrTOTPNotEnabled
	}
	if !totp.Validate(code, t.Secret) {
		return ErrInvalidTOTPCode
	}
	return s.TOTPRepo.Disable(ctx, userID)
}

// Status reports whether 2FA is enabled for the user.
func (s *TOTPService) Status(ctx context.Context, userID int) (bool, error) {
	t, err := s.TOTPRepo.Get(ctx, userID)
	if err != nil {
		return false, nil
	}
	return t.Enabled, nil
}
