package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"oleo-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Mailer sends transactional mail. With no API key configured it degrades
// to a mock that logs instead of sending, so the public forms keep working
// in development.
type Mailer struct {
	apiKey      string
	endpoint    string
	fromAddress string
	contactTo   string
	httpClient  *http.Client
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		apiKey:      cfg.Mail.APIKey,
		endpoint:    cfg.Mail.Endpoint,
		fromAddress: cfg.Mail.FromAddress,
		contactTo:   cfg.Mail.ContactTo,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// SendContacto forwards a contact-form submission to the organization
// inbox.
func (m *Mailer) SendContacto(ctx context.Context, nombre, email, texto string) error {
	return m.send(ctx, &message{
		From:    m.fromAddress,
		To:      m.contactTo,
		ReplyTo: email,
		Subject: fmt.Sprintf("Contacto web: %s", nombre),
		Text:    texto,
	})
}

// SendInscripcion forwards an enrolment request and confirms it to the
// requester.
func (m *Mailer) SendInscripcion(ctx context.Context, nombre, email, direccion, telefono string) error {
	body := fmt.Sprintf("Nombre: %s\nEmail: %s\nDireccion: %s\nTelefono: %s", nombre, email, direccion, telefono)
	if err := m.send(ctx, &message{
		From:    m.fromAddress,
		To:      m.contactTo,
		ReplyTo: email,
		Subject: fmt.Sprintf("Nueva inscripcion: %s", nombre),
		Text:    body,
	}); err != nil {
		return err
	}

	return m.send(ctx, &message{
		From:    m.fromAddress,
		To:      email,
		Subject: "Hemos recibido tu inscripcion",
		Text:    fmt.Sprintf("Hola %s, gracias por unirte. Te contactaremos para programar la primera recogida.", nombre),
	})
}

func (m *Mailer) send(ctx context.Context, msg *message) error {
	if m.apiKey == "" || m.endpoint == "" {
		logrus.Infof("[Mailer] mock send to %s: %s", msg.To, msg.Subject)
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}
