package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/xavierca1/seerah-hajj/internal/entity"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var leadTemplate = template.Must(template.ParseFS(templatesFS, "templates/new_lead.html"))

// Dialer é o subconjunto do *gomail.Dialer usado no envio.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	To     string
	Dialer Dialer
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		From:   from,
		To:     to,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NotifyNewLead avisa a equipe de um novo formulário. O ctx só é checado
// antes do envio: o gomail não aceita cancelamento no meio do SMTP.
func (s *EmailSender) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.leadMessage(lead)
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) leadMessage(lead *entity.Lead) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, newLeadEmailData(lead)); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Reply-To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf("New Hajj intake: %s (%s)", lead.FullName, lead.HajjStatus))
	m.SetBody("text/html", body.String())
	return m, nil
}
