package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/config"
	"github.com/davron17/finflow/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP delivery is configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != ""
}

// SendCashGapAlert warns a user about forecasted negative-balance dates
func (s *Sender) SendCashGapAlert(to, username string, gaps []models.CashGap) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Cash Gap Warning"

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += fmt.Sprintf("Your cash-flow forecast projects a negative balance on %d day(s):\n", len(gaps))
	for _, gap := range gaps {
		body += fmt.Sprintf("  %s: deficit %.2f\n", gap.Date.Format("2006-01-02"), gap.Deficit)
	}
	body += "\nConsider delaying planned spending or bringing receivables forward.\n"
	body += "\nBest regards,\nFinFlow"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendAnomalyDigest reports unusual category spending growth
func (s *Sender) SendAnomalyDigest(to, username string, anomalies []models.Anomaly) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Spending Anomaly Digest"

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += "The following spending categories changed sharply over the last 30 days:\n"
	for _, a := range anomalies {
		body += fmt.Sprintf("  %s\n", a.Message)
	}
	body += "\nBest regards,\nFinFlow"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
