package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"quoteflow/internal/domain/entities"
)

var ErrEmailNotConfigured = errors.New("email not configured")

// SMTPConfig holds SMTP configuration.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	// AppURL is linked from the message so the detailer can open the quote.
	AppURL string
}

func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

var headerSafe = strings.NewReplacer("\r", "", "\n", " ")

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender sends quote-viewed alerts over SMTP.
type EmailSender struct {
	config   SMTPConfig
	server   string
	auth     smtp.Auth
	sendMail sendMailFunc
}

var _ Sender = (*EmailSender)(nil)

func NewEmailSender(config SMTPConfig) (*EmailSender, error) {
	if !config.IsConfigured() {
		return nil, ErrEmailNotConfigured
	}
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &EmailSender{
		config:   config,
		server:   config.Host + ":" + config.Port,
		auth:     auth,
		sendMail: smtp.SendMail,
	}, nil
}

type quoteViewedData struct {
	DetailerName string
	Body         string
	QuoteTitle   string
	ViewedAt     string
	QuoteURL     string
}

var quoteViewedTemplate = template.Must(template.New("quote_viewed").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <p>Hi {{.DetailerName}},</p>
  <p>{{.Body}}</p>
  <p>Opened at {{.ViewedAt}}.</p>
  {{if .QuoteURL}}<p><a href="{{.QuoteURL}}">Open {{.QuoteTitle}}</a></p>{{end}}
</body>
</html>`))

func (s *EmailSender) SendQuoteViewed(ctx context.Context, quote entities.Quote, detailer entities.Detailer, viewedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := quoteViewedData{
		DetailerName: detailer.Name,
		Body:         quoteViewedBody(quote),
		QuoteTitle:   quote.Title,
		ViewedAt:     viewedAt.UTC().Format("Jan 2, 2006 15:04 MST"),
	}
	if s.config.AppURL != "" {
		data.QuoteURL = s.config.AppURL + "/quotes/" + quote.ID
	}
	var html bytes.Buffer
	if err := quoteViewedTemplate.Execute(&html, data); err != nil {
		return fmt.Errorf("render quote viewed template: %w", err)
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}
	subject := headerSafe.Replace(fmt.Sprintf("%s: %s", quoteViewedTitle, quote.Title))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", detailer.Email)
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	msg.Write(html.Bytes())

	return s.sendMail(s.server, s.auth, s.config.From, []string{detailer.Email}, msg.Bytes())
}
