package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"vocalhub-backend/internal/config"
	"vocalhub-backend/pkg/logger"
)

// DecisionNoticeData tells a submitter how their upload was reviewed
type DecisionNoticeData struct {
	Email       string
	DisplayName string
	Kind        string
	Title       string
	Status      string
}

// PendingDigestData lists the pending counts for the admin digest
type PendingDigestData struct {
	Email   string
	Pending map[string]int
}

type EmailService interface {
	SendDecisionNotice(ctx context.Context, data DecisionNoticeData) error
	SendPendingDigest(ctx context.Context, data PendingDigestData) error
}

type smtpEmailService struct {
	addr     string
	from     string
	fromName string
	auth     smtp.Auth
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPEmailService(cfg config.EmailConfig) EmailService {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &smtpEmailService{
		addr:     cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort),
		from:     cfg.From,
		fromName: cfg.FromName,
		auth:     auth,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendDecisionNotice(ctx context.Context, data DecisionNoticeData) error {
	name := data.DisplayName
	if name == "" {
		name = data.Email
	}

	var verdict string
	if data.Status == "APPROVED" {
		verdict = "has been approved and is now publicly visible"
	} else {
		verdict = "was not approved. You can submit a revised version at any time"
	}

	subject := fmt.Sprintf("Your %s submission was reviewed", data.Kind)
	body := fmt.Sprintf(`Hello %s,

Your %s "%s" %s.

Thank you for contributing to the community.`, name, data.Kind, data.Title, verdict)

	return s.deliver(data.Email, subject, body)
}

func (s *smtpEmailService) SendPendingDigest(ctx context.Context, data PendingDigestData) error {
	var lines []string
	for kind, n := range data.Pending {
		lines = append(lines, fmt.Sprintf("  %s: %d pending", kind, n))
	}

	subject := "Submissions waiting for review"
	body := "The moderation queue currently holds:\n\n" + strings.Join(lines, "\n")

	return s.deliver(data.Email, subject, body)
}

func (s *smtpEmailService) deliver(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.fromName, s.from, to, subject, body))

	if err := s.send(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		logger.Error("Failed to send email to "+to+" via "+s.addr, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
