package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/containrrr/shoutrrr"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/config"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/logger"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/metrics"
)

// AlertDispatcher is the narrow notification seam used by the prediction
// pipeline. Dispatch is best-effort: implementations log failures and never
// return an error, so alerting can never fail a prediction.
type AlertDispatcher interface {
	SendAlert(label string, latitude, longitude *float64, score float64)
}

// AlertService sends condition alerts over authenticated SMTP and fans out
// to any configured shoutrrr channels.
type AlertService struct {
	cfg config.Config
}

// NewAlertService creates a new alert service instance.
func NewAlertService(cfg config.Config) *AlertService {
	return &AlertService{cfg: cfg}
}

// SendAlert composes and delivers the alert synchronously. With no
// destination configured it is a no-op beyond a debug log.
func (s *AlertService) SendAlert(label string, latitude, longitude *float64, score float64) {
	subject := fmt.Sprintf("Groundwater Alert: %s", label)
	message := fmt.Sprintf("Groundwater condition at (%s, %s) is %s.\nDecision Score: %g",
		coord(latitude), coord(longitude), label, score)

	if s.cfg.AlertEmail == "" {
		logger.Log().Debug("no ALERT_EMAIL configured, skipping email alert")
	} else {
		s.sendEmail(subject, message)
	}

	for _, url := range s.cfg.ShoutrrrURLs {
		if err := shoutrrr.Send(url, subject+"\n\n"+message); err != nil {
			metrics.IncAlertFailure()
			logger.WithFields(map[string]interface{}{"url": url}).WithError(err).Error("notification channel send failed")
		}
	}
}

func (s *AlertService) sendEmail(subject, message string) {
	smtpCfg := s.cfg.SMTP
	if smtpCfg.Sender == "" || smtpCfg.Password == "" {
		logger.Log().Warn("missing EMAIL_SENDER or EMAIL_PASSWORD, skipping email alert")
		return
	}

	msg := buildEmail(smtpCfg.Sender, s.cfg.AlertEmail, subject, message)
	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	auth := smtp.PlainAuth("", smtpCfg.Sender, smtpCfg.Password, smtpCfg.Host)

	if err := sendSTARTTLS(addr, smtpCfg.Host, auth, smtpCfg.Sender, s.cfg.AlertEmail, msg); err != nil {
		metrics.IncAlertFailure()
		logger.WithFields(map[string]interface{}{"to": s.cfg.AlertEmail}).WithError(err).Error("email alert send failed")
		return
	}

	logger.WithFields(map[string]interface{}{"to": s.cfg.AlertEmail}).Info("email alert sent")
}

// buildEmail constructs a properly formatted plain-text email message.
func buildEmail(from, to, subject, body string) []byte {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.Bytes()
}

// sendSTARTTLS submits a message over SMTP upgraded with STARTTLS.
func sendSTARTTLS(addr, host string, auth smtp.Auth, from, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("SMTP connection failed: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}

	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("STARTTLS failed: %w", err)
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func coord(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *v)
}
