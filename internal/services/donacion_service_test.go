package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"oleo-backend/internal/config"
	"oleo-backend/internal/repositories"

	"github.com/pashagolub/pgxmock/v3"
)

func newDonacionServiceWithMock(t *testing.T) (*DonacionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	cfg := &config.Config{}
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Razorpay.KeySecret = "rzp_test_secret"
	cfg.Razorpay.WebhookSecret = "whsec"
	svc := NewDonacionService(repositories.NewDonacionRepository(mock), cfg)
	return svc, mock
}

func signPayment(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

var donacionColumns = []string{
	"id", "order_id", "payment_id", "nombre", "email", "importe", "estado", "created_at", "updated_at",
}

func TestVerifyPaymentMarksPaid(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	now := time.Now()
	payID := "pay_1"
	mock.ExpectQuery(`FROM donaciones WHERE order_id=\$1`).
		WithArgs("order_1").
		WillReturnRows(pgxmock.NewRows(donacionColumns).
			AddRow(1, "order_1", nil, "Ana", "ana@example.com", 25.0, "created", now, now))
	mock.ExpectExec(`UPDATE donaciones SET payment_id=\$1, estado=\$2`).
		WithArgs("pay_1", "paid", "order_1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`FROM donaciones WHERE order_id=\$1`).
		WithArgs("order_1").
		WillReturnRows(pgxmock.NewRows(donacionColumns).
			AddRow(1, "order_1", &payID, "Ana", "ana@example.com", 25.0, "paid", now, now))

	d, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: signPayment("rzp_test_secret", "order_1", "pay_1"),
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if d.Estado != DonacionPagada {
		t.Fatalf("expected paid donation, got %q", d.Estado)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE donaciones SET payment_id=\$1, estado=\$2`).
		WithArgs("pay_1", "failed", "order_1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "forged",
	})
	if err == nil {
		t.Fatalf("forged signature must be rejected")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentIdempotentWhenAlreadyPaid(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	now := time.Now()
	payID := "pay_1"
	mock.ExpectQuery(`FROM donaciones WHERE order_id=\$1`).
		WithArgs("order_1").
		WillReturnRows(pgxmock.NewRows(donacionColumns).
			AddRow(1, "order_1", &payID, "Ana", "ana@example.com", 25.0, "paid", now, now))

	d, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: signPayment("rzp_test_secret", "order_1", "pay_1"),
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if d.Estado != DonacionPagada {
		t.Fatalf("expected paid donation, got %q", d.Estado)
	}
	// No UPDATE was expected; a second write would fail ExpectationsWereMet
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	body := []byte(`{"event":"payment.captured"}`)
	h := hmac.New(sha256.New, []byte("whsec"))
	h.Write(body)
	good := hex.EncodeToString(h.Sum(nil))

	if !svc.VerifyWebhookSignature(body, good) {
		t.Fatalf("valid signature rejected")
	}
	if svc.VerifyWebhookSignature(body, "forged") {
		t.Fatalf("forged signature accepted")
	}
}

func TestProcessWebhookPaymentCaptured(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM donaciones WHERE order_id=\$1`).
		WithArgs("order_2").
		WillReturnRows(pgxmock.NewRows(donacionColumns).
			AddRow(2, "order_2", nil, "Luis", "luis@example.com", 10.0, "created", now, now))
	mock.ExpectExec(`UPDATE donaciones SET payment_id=\$1, estado=\$2`).
		WithArgs("pay_2", "paid", "order_2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	payload := map[string]interface{}{
		"payment": map[string]interface{}{
			"entity": map[string]interface{}{
				"id":       "pay_2",
				"order_id": "order_2",
			},
		},
	}
	if err := svc.ProcessWebhook(context.Background(), "payment.captured", payload); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessWebhookPaymentFailed(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE donaciones SET payment_id=\$1, estado=\$2`).
		WithArgs("pay_3", "failed", "order_3").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	payload := map[string]interface{}{
		"payment": map[string]interface{}{
			"entity": map[string]interface{}{
				"id":       "pay_3",
				"order_id": "order_3",
			},
		},
	}
	if err := svc.ProcessWebhook(context.Background(), "payment.failed", payload); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessWebhookIgnoresUnknownEvents(t *testing.T) {
	svc, mock := newDonacionServiceWithMock(t)
	defer mock.Close()

	payload := map[string]interface{}{
		"payment": map[string]interface{}{
			"entity": map[string]interface{}{"id": "pay_4", "order_id": "order_4"},
		},
	}
	if err := svc.ProcessWebhook(context.Background(), "refund.created", payload); err != nil {
		t.Fatalf("unknown events must be ignored, got %v", err)
	}
}
