package services

import (
	"fmt"
	"html"
	"net/smtp"

	"github.com/obj8899/studio/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, s.compose(to, subject, body))
}

func (s *EmailService) compose(to, subject, body string) []byte {
	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body))
}

// SendJoinRequestNotice tells a team creator that someone asked to join.
func (s *EmailService) SendJoinRequestNotice(to, teamName, requesterName, role, reviewURL string) error {
	subject := fmt.Sprintf("%s wants to join %s", requesterName, teamName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New join request</h2>
			<p><strong>%s</strong> asked to join <strong>%s</strong> as <strong>%s</strong>.</p>
			<p><a href="%s">Review the request</a></p>
		</body>
		</html>
	`, html.EscapeString(requesterName), html.EscapeString(teamName), html.EscapeString(role), reviewURL)

	return s.Send(to, subject, body)
}

func (s *EmailService) SendJoinRequestDecision(to, teamName string, approved bool) error {
	outcome := "declined"
	if approved {
		outcome = "approved"
	}
	subject := fmt.Sprintf("Your request to join %s was %s", teamName, outcome)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Join request %s</h2>
			<p>Your request to join <strong>%s</strong> was %s.</p>
		</body>
		</html>
	`, outcome, html.EscapeString(teamName), outcome)

	return s.Send(to, subject, body)
}
