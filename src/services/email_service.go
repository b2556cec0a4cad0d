package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/username/taxmate/backend/src/config"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/models"
)

type EmailService interface {
	SendFilingReceiptEmail(toEmail, username string, filing *models.Filing) error
}

// NewEmailService picks the provider from configuration. Incomplete provider
// configuration falls back to the mock, never to a hard failure: filings must
// not depend on email availability.
func NewEmailService() EmailService {
	if config.Cfg == nil {
		logger.L.Error("Configuration (config.Cfg) is nil. Email service will default to mock.")
		return &MockEmailService{}
	}

	provider := strings.ToLower(config.Cfg.EmailServiceProvider)
	logger.L.Info("Initializing email service", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("Mailgun configuration incomplete (Domain, API Key, or SenderEmail missing). Falling back to MockEmailService.")
			return &MockEmailService{}
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		logger.L.Info("Mailgun client initialized", "domain", config.Cfg.MailgunDomain)
		return &MailgunEmailService{
			mg:          mg,
			senderEmail: config.Cfg.SenderEmail,
			senderName:  config.Cfg.SenderName,
		}
	case "smtp":
		if config.Cfg.SMTPServer == "" || config.Cfg.SMTPUser == "" || config.Cfg.SMTPPassword == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("SMTP configuration incomplete. Falling back to MockEmailService.")
			return &MockEmailService{}
		}
		return &SMTPEmailService{
			SMTPServer:   config.Cfg.SMTPServer,
			SMTPPort:     config.Cfg.SMTPPort,
			SMTPUser:     config.Cfg.SMTPUser,
			SMTPPassword: config.Cfg.SMTPPassword,
			SenderEmail:  config.Cfg.SenderEmail,
		}
	default:
		logger.L.Info("Defaulting to MockEmailService.")
		return &MockEmailService{}
	}
}

func filingReceiptSubject(filing *models.Filing) string {
	return fmt.Sprintf("TaxMate filing receipt: %s return for period %d", filing.Type, filing.Period)
}

func filingReceiptBody(username string, filing *models.Filing) string {
	return fmt.Sprintf(`Hi %s,

Your %s return for period %d was accepted.

Amount: KES %.2f
Reference: %s
Status: %s

All figures are drafts computed from your records - consult KRA guidelines before relying on them.

Thanks,
The TaxMate Team`, username, filing.Type, filing.Period, filing.Amount, filing.Reference, filing.Status)
}

type SMTPEmailService struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
}

func (s *SMTPEmailService) SendFilingReceiptEmail(toEmail, username string, filing *models.Filing) error {
	from := s.SenderEmail
	to := []string{toEmail}
	subject := filingReceiptSubject(filing)
	body := filingReceiptBody(username, filing)

	header := make(map[string]string)
	header["From"] = from
	header["To"] = toEmail
	header["Subject"] = subject
	header["MIME-version"] = "1.0"
	header["Content-Type"] = "text/plain; charset=\"UTF-8\""
	message := ""
	for k, v := range header {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPassword, s.SMTPServer)
	addr := fmt.Sprintf("%s:%d", s.SMTPServer, s.SMTPPort)
	if err := smtp.SendMail(addr, auth, from, to, []byte(message)); err != nil {
		logger.L.Error("Failed to send filing receipt email via SMTP", "error", err, "to", toEmail)
		return fmt.Errorf("failed to send filing receipt email via SMTP: %w", err)
	}
	logger.L.Info("Filing receipt email sent successfully via SMTP", "to", toEmail)
	return nil
}

type MailgunEmailService struct {
	mg          mailgun.Mailgun
	senderEmail string
	senderName  string
}

func (s *MailgunEmailService) SendFilingReceiptEmail(toEmail, username string, filing *models.Filing) error {
	from := fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)
	subject := filingReceiptSubject(filing)
	plainTextBody := filingReceiptBody(username, filing)

	htmlBody := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<p>Hi %s,</p>
			<p>Your <strong>%s</strong> return for period %d was accepted.</p>
			<ul>
				<li>Amount: KES %.2f</li>
				<li>Reference: %s</li>
				<li>Status: %s</li>
			</ul>
			<p>All figures are drafts computed from your records - consult KRA guidelines before relying on them.</p>
			<p>Thanks,<br>The TaxMate Team</p>
		</body>
	</html>`, username, filing.Type, filing.Period, filing.Amount, filing.Reference, filing.Status)

	message := s.mg.NewMessage(from, subject, plainTextBody, toEmail)
	message.SetHtml(htmlBody)
	message.AddTag("filing-receipt")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	resp, id, err := s.mg.Send(ctx, message)
	if err != nil {
		logger.L.Error("Failed to send filing receipt email via Mailgun", "error", err, "to", toEmail, "mailgunResp", resp, "mailgunId", id)
		return fmt.Errorf("mailgun send failed: %w. Response: %s", err, resp)
	}
	logger.L.Info("Filing receipt email sent successfully via Mailgun", "to", toEmail, "id", id)
	return nil
}

type MockEmailService struct{}

func (m *MockEmailService) SendFilingReceiptEmail(toEmail, username string, filing *models.Filing) error {
	logger.L.Info("MockEmailService: Would send filing receipt email.",
		"to", toEmail, "username", username, "filingType", filing.Type, "reference", filing.Reference)
	return nil
}
