package email

import (
	"context"
	"errors"
	"io"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/credit-simulator/internal/config"
	"github.com/Dan9191/credit-simulator/internal/models"
)

type outbox struct {
	sent []*email.Email
	addr string
	err  error
}

func (o *outbox) send(e *email.Email, addr string, _ smtp.Auth) error {
	o.sent = append(o.sent, e)
	o.addr = addr
	return o.err
}

func newTestSender(cfg *config.Config) (*Sender, *outbox) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(cfg, log)
	box := &outbox{}
	s.send = box.send
	return s, box
}

func mailConfig() *config.Config {
	return &config.Config{SMTPHost: "smtp.example.org", SMTPPort: "587", SenderEmail: "banco@example.org"}
}

func TestCreditoCreado(t *testing.T) {
	s, box := newTestSender(mailConfig())
	u := &models.Usuario{ID: 1, Nombre: "Ana", Correo: "ana@x.com"}
	c := &models.Credito{ID: 3, Monto: decimal.RequireFromString("1000"), Plazo: 12, Tipo: "Personal", UsuarioID: 1}

	require.NoError(t, s.CreditoCreado(context.Background(), u, c))
	require.Len(t, box.sent, 1)
	assert.Equal(t, "smtp.example.org:587", box.addr)
	assert.Equal(t, []string{"ana@x.com"}, box.sent[0].To)
	assert.Contains(t, string(box.sent[0].Text), "1000.00")
	assert.Contains(t, string(box.sent[0].Text), "12 meses")
}

func TestDisabledSendsNothing(t *testing.T) {
	s, box := newTestSender(&config.Config{})

	require.NoError(t, s.CreditoCreado(context.Background(), &models.Usuario{}, &models.Credito{}))
	require.NoError(t, s.SendDigest("ops@example.org", "24h", nil))
	assert.Empty(t, box.sent)
}

func TestSendDigest(t *testing.T) {
	s, box := newTestSender(mailConfig())

	err := s.SendDigest("ops@example.org", "últimas 24h", []DigestLine{
		{Entidad: models.EntidadCredito, Accion: models.AccionCrear, Total: 4},
	})
	require.NoError(t, err)
	require.Len(t, box.sent, 1)
	assert.Contains(t, box.sent[0].Subject, "últimas 24h")
	assert.Contains(t, string(box.sent[0].Text), "CREAR")
}

func TestSendFailure(t *testing.T) {
	s, box := newTestSender(mailConfig())
	box.err = errors.New("connection refused")

	err := s.SendDigest("ops@example.org", "24h", nil)
	assert.ErrorContains(t, err, "connection refused")
}
