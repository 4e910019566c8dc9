package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type Config struct {
	APIKey      string
	FromAddress string
	FromName    string
	FrontendURL string
}

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
	templates   *template.Template
	logger      *zap.Logger
}

// NewEmailService returns a service that only logs when no API key is set.
func NewEmailService(cfg Config, logger *zap.Logger) *EmailService {
	var client *resend.Client
	if cfg.APIKey != "" {
		client = resend.NewClient(cfg.APIKey)
	}
	return &EmailService{
		client:      client,
		from:        cfg.FromAddress,
		fromName:    cfg.FromName,
		frontendURL: cfg.FrontendURL,
		templates:   template.Must(template.New("email").Parse(templates)),
		logger:      logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	return s.send(email, "Welcome to Star Club!", "welcome", map[string]interface{}{
		"FullName":    fullName,
		"Email":       email,
		"FrontendURL": s.frontendURL,
		"Year":        time.Now().Year(),
	})
}

func (s *EmailService) SendTierUpgradeEmail(email, fullName, tier string, totalStars int) error {
	return s.send(email, fmt.Sprintf("You reached %s tier!", tier), "tier_upgrade", map[string]interface{}{
		"FullName":    fullName,
		"Tier":        tier,
		"TotalStars":  totalStars,
		"FrontendURL": s.frontendURL,
		"Year":        time.Now().Year(),
	})
}

func (s *EmailService) send(to, subject, templateName string, data map[string]interface{}) error {
	html, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error("render email template", zap.String("template", templateName), zap.Error(err))
		return err
	}

	if s.client == nil {
		s.logger.Info("email delivery disabled, skipping", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("send email", zap.String("to", to), zap.String("template", templateName), zap.Error(err))
		return fmt.Errorf("send %s email: %w", templateName, err)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("template", templateName), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
