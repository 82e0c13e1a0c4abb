package service

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"studiosite/internal/config"
	"studiosite/internal/mailer"
	"studiosite/internal/models"
)

type NotificationService interface {
	SendLead(ctx context.Context, lead models.Lead) error
	SendContact(ctx context.Context, msg models.ContactMessage) error
}

type notificationService struct {
	sender mailer.Sender
	cfg    config.Mail
}

func NewNotificationService(sender mailer.Sender, cfg config.Mail) NotificationService {
	return &notificationService{sender: sender, cfg: cfg}
}

var leadHTML = htmltemplate.Must(htmltemplate.New("lead").Parse(
	`<b>Name:</b> {{.Name}}<br/><b>Email:</b> {{.Email}}<br/><b>Phone:</b> {{.Phone}}<br/><br/>` +
		`<b>Project Description:</b><br/>{{.ProjectDescription}}`))

var leadText = texttemplate.Must(texttemplate.New("lead").Parse(
	"Name: {{.Name}}\nEmail: {{.Email}}\nPhone: {{.Phone}}\n\nProject Description:\n{{.ProjectDescription}}"))

var contactHTML = htmltemplate.Must(htmltemplate.New("contact").Parse(
	`<h2>New Contact Message</h2>` +
		`<p><b>Name:</b> {{.Name}}</p><p><b>Email:</b> {{.Email}}</p><p><b>Phone:</b> {{.Phone}}</p>` +
		`{{with .Company}}<p><b>Company:</b> {{.}}</p>{{end}}` +
		`{{with .ProjectType}}<p><b>Project Type:</b> {{.}}</p>{{end}}` +
		`{{with .Budget}}<p><b>Budget:</b> {{.}}</p>{{end}}` +
		`{{with .Timeline}}<p><b>Timeline:</b> {{.}}</p>{{end}}` +
		`<p><b>Message:</b></p><p>{{.Message}}</p>`))

var contactText = texttemplate.Must(texttemplate.New("contact").Parse(
	"Name: {{.Name}}\nEmail: {{.Email}}\nPhone: {{.Phone}}\n" +
		"{{with .Company}}Company: {{.}}\n{{end}}" +
		"{{with .ProjectType}}Project Type: {{.}}\n{{end}}" +
		"{{with .Budget}}Budget: {{.}}\n{{end}}" +
		"{{with .Timeline}}Timeline: {{.}}\n{{end}}" +
		"\nMessage:\n{{.Message}}"))

func render(html *htmltemplate.Template, text *texttemplate.Template, data any) (string, string, error) {
	var htmlBuf, textBuf bytes.Buffer

	if err := html.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render html email: %w", err)
	}
	if err := text.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render text email: %w", err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func (s *notificationService) SendLead(ctx context.Context, lead models.Lead) error {
	html, text, err := render(leadHTML, leadText, lead)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, s.message("Website Lead", "New Project Inquiry", lead.Name, lead.Email, html, text))
}

func (s *notificationService) SendContact(ctx context.Context, msg models.ContactMessage) error {
	html, text, err := render(contactHTML, contactText, msg)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, s.message("Website Contact", "New Contact Message", msg.Name, msg.Email, html, text))
}

func (s *notificationService) message(senderName, subject, replyName, replyEmail, html, text string) mailer.Message {
	return mailer.Message{
		Sender:      mailer.Address{Name: senderName, Email: s.cfg.SenderEmail},
		To:          []mailer.Address{{Email: s.cfg.LeadEmailTo}},
		ReplyTo:     &mailer.Address{Name: strings.TrimSpace(replyName), Email: replyEmail},
		Subject:     subject,
		HTMLContent: html,
		TextContent: text,
	}
}
