package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"oleo-backend/internal/config"
	"oleo-backend/internal/models"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/timeutil"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sirupsen/logrus"
)

const (
	DonacionCreada  = "created"
	DonacionPagada  = "paid"
	DonacionFallida = "failed"
)

// DonacionService runs the online donation flow against the payment
// gateway: order creation, payment verification and webhook processing.
type DonacionService struct {
	DonacionRepo *repositories.DonacionRepository

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewDonacionService(donacionRepo *repositories.DonacionRepository, cfg *config.Config) *DonacionService {
	return &DonacionService{
		DonacionRepo:  donacionRepo,
		keyID:         cfg.Razorpay.KeyID,
		keySecret:     cfg.Razorpay.KeySecret,
		webhookSecret: cfg.Razorpay.WebhookSecret,
	}
}

func (s *DonacionService) client() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// KeyID is exposed so the public donation page can initialize the checkout
// widget.
func (s *DonacionService) KeyID() string {
	return s.keyID
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Importe  float64 `json:"importe"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// CreateOrder opens a gateway order for the donation amount and records the
// donation as created.
func (s *DonacionService) CreateOrder(ctx context.Context, req *models.CreateDonacionRequest) (*CreateOrderResponse, error) {
	if req.Importe <= 0 {
		return nil, errors.New("importe must be positive")
	}

	client := s.client()
	if client == nil {
		return nil, errors.New("payment gateway not configured")
	}

	// Gateway amounts are integer cents
	orderData := map[string]interface{}{
		"amount":   int(req.Importe * 100),
		"currency": "EUR",
		"receipt":  fmt.Sprintf("don_%d", timeutil.Now().Unix()),
		"notes": map[string]interface{}{
			"nombre": req.Nombre,
			"email":  req.Email,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, errors.New("gateway returned no order id")
	}

	d := &models.Donacion{
		OrderID: orderID,
		Nombre:  req.Nombre,
		Email:   req.Email,
		Importe: req.Importe,
		Estado:  DonacionCreada,
	}
	if err := s.DonacionRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to store donation: %w", err)
	}

	return &CreateOrderResponse{
		OrderID:  orderID,
		Importe:  req.Importe,
		Currency: "EUR",
		KeyID:    s.keyID,
	}, nil
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyPayment checks the checkout callback signature and marks the
// donation paid. Verifying an already-paid donation is a no-op.
func (s *DonacionService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*models.Donacion, error) {
	if !s.verifySignature(req.OrderID, req.PaymentID, req.Signature) {
		_ = s.DonacionRepo.UpdateEstado(ctx, req.OrderID, req.PaymentID, DonacionFallida)
		return nil, errors.New("invalid payment signature")
	}

	d, err := s.DonacionRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("donation not found: %w", err)
	}
	if d.Estado == DonacionPagada {
		return d, nil
	}

	if err := s.DonacionRepo.UpdateEstado(ctx, req.OrderID, req.PaymentID, DonacionPagada); err != nil {
		return nil, err
	}
	return s.DonacionRepo.GetByOrderID(ctx, req.OrderID)
}

func (s *DonacionService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the gateway webhook signature over the raw
// body. Verification is skipped when no webhook secret is configured.
func (s *DonacionService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook applies a gateway event to the donation it references.
func (s *DonacionService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	entity := paymentEntity(payload)
	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return errors.New("missing order_id in webhook")
	}

	switch event {
	case "payment.captured":
		d, err := s.DonacionRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("donation not found: %w", err)
		}
		if d.Estado == DonacionPagada {
			logrus.Infof("[Donaciones] webhook for already-paid order %s", orderID)
			return nil
		}
		return s.DonacionRepo.UpdateEstado(ctx, orderID, paymentID, DonacionPagada)
	case "payment.failed":
		return s.DonacionRepo.UpdateEstado(ctx, orderID, paymentID, DonacionFallida)
	default:
		logrus.Infof("[Donaciones] unhandled webhook event: %s", event)
		return nil
	}
}

func paymentEntity(payload map[string]interface{}) map[string]interface{} {
	p, ok := payload["payment"].(map[string]interface{})
	if !ok {
		p = payload
	}
	entity, ok := p["entity"].(map[string]interface{})
	if !ok {
		entity = p
	}
	return entity
}

func (s *DonacionService) ListDonaciones(ctx context.Context) ([]models.Donacion, error) {
	return s.DonacionRepo.List(ctx)
}
