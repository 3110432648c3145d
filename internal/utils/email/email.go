package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/credit-simulator/internal/config"
	"github.com/Dan9191/credit-simulator/internal/models"
)

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   (*email.Email).Send,
	}
}

// CreditoCreado tells the owner of a new credit that it was registered.
// Nothing is sent when mail is not configured.
func (s *Sender) CreditoCreado(_ context.Context, u *models.Usuario, c *models.Credito) error {
	if !s.cfg.MailEnabled() {
		s.logger.Debugf("Mail disabled, not notifying usuario %d", u.ID)
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{u.Correo}
	e.Subject = "Registro de crédito"

	body := fmt.Sprintf("Estimado/a %s,\n\n", u.Nombre)
	body += fmt.Sprintf(
		"Se registró su crédito %s por un monto de %s a %d meses.\n",
		c.Tipo, c.Monto.StringFixed(2), c.Plazo,
	)
	if c.Descripcion != nil && *c.Descripcion != "" {
		body += fmt.Sprintf("Descripción: %s\n", *c.Descripcion)
	}
	body += "\nAtentamente,\nSimulador de Créditos"
	e.Text = []byte(body)

	return s.deliver(e, u.Correo)
}

// DigestLine is one entidad/accion group of the audit digest.
type DigestLine struct {
	Entidad string
	Accion  string
	Total   int64
}

// SendDigest mails the audit summary to the given recipient.
func (s *Sender) SendDigest(to, period string, lines []DigestLine) error {
	if !s.cfg.MailEnabled() || to == "" {
		s.logger.Debugf("Mail disabled, not sending digest")
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Resumen de actividad " + period

	var b strings.Builder
	fmt.Fprintf(&b, "Actividad registrada %s:\n\n", period)
	if len(lines) == 0 {
		b.WriteString("Sin movimientos.\n")
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "%-20s %-20s %d\n", l.Entidad, l.Accion, l.Total)
	}
	e.Text = []byte(b.String())

	return s.deliver(e, to)
}

func (s *Sender) deliver(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
