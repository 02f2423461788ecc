package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/middleware"
)

const (
	MailerTypeLog  = "log"
	MailerTypeSMTP = "smtp"
	MailerTypeSES  = "ses"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---

// LogMailer は送信せずにログへ出力します (開発用)
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---

// SmtpMailer は認証なしのSMTPサーバー (開発用の MailHog 等) に送信します
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func NewSmtpMailer(cfg *config.SMTPConfig) *SmtpMailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))

	logger.Debug("Attempting to send email via SMTP", "smtp_addr", addr, "from", m.cfg.From, "to", to)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return fmt.Errorf("SmtpMailer.Send: dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		logger.Error("Failed to start SMTP session", "error", err, "addr", addr)
		return fmt.Errorf("SmtpMailer.Send: client: %w", err)
	}
	defer c.Close()

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return fmt.Errorf("SmtpMailer.Send: mail: %w", err)
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return fmt.Errorf("SmtpMailer.Send: rcpt: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return fmt.Errorf("SmtpMailer.Send: data: %w", err)
	}
	if _, err = wc.Write([]byte(buildMessage(m.cfg.From, to, subject, body))); err != nil {
		wc.Close()
		logger.Error("Failed to write email data", "error", err)
		return fmt.Errorf("SmtpMailer.Send: write: %w", err)
	}
	if err = wc.Close(); err != nil {
		logger.Error("Failed to finish email data", "error", err)
		return fmt.Errorf("SmtpMailer.Send: close: %w", err)
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return c.Quit()
}

// buildMessage はヘッダーと本文を CRLF 区切りで組み立てます
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.String()
}

// NewMailer は mailer.type に応じた実装を返します
func NewMailer(ctx context.Context, cfg *config.Config) (Mailer, error) {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case MailerTypeSMTP:
		logger.Info("Initializing SMTP mailer...")
		return NewSmtpMailer(&cfg.SMTP), nil
	case MailerTypeSES:
		logger.Info("Initializing SES mailer...")
		sesMailer, err := NewSESMailer(ctx, &cfg.SES)
		if err != nil {
			return nil, err
		}
		return sesMailer, nil
	case MailerTypeLog, "":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
