package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var (
	ErrNotConfigured = errors.New("mail transport is not configured")
	ErrNoRecipient   = errors.New("mail has no recipient")
)

type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers one message per call. It does not retry or queue.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	if config.Mail.Host == "" {
		log.Warn().Msg("No SMTP host configured, outgoing mail will be dropped")
	}

	return &smtpMailer{
		config: config,
		otel:   otel,
	}
}

func (m *smtpMailer) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"mail.subject":     message.Subject,
		"mail.recipients":  len(message.To),
		"mail.attachments": len(message.Attachments),
	})

	if m.config.Mail.Host == "" {
		return ErrNotConfigured
	}

	msg, err := BuildMsg(m.config.Mail.FromName, m.config.Mail.FromAddress, message)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.config.Mail.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("subject", message.Subject).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("subject", message.Subject).Strs("to", message.To).Msg("mail sent")

	return nil
}

func (m *smtpMailer) clientOptions() []mail.Option {
	options := []mail.Option{
		mail.WithPort(m.config.Mail.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if m.config.Mail.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.Mail.Username),
			mail.WithPassword(m.config.Mail.Password),
		)
	}

	return options
}

// BuildMsg assembles the MIME message: HTML body plus attachments.
func BuildMsg(fromName, fromAddress string, message Message) (*mail.Msg, error) {
	if len(message.To) == 0 {
		return nil, ErrNoRecipient
	}

	msg := mail.NewMsg()

	if err := msg.FromFormat(fromName, fromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(message.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTML)

	for _, attachment := range message.Attachments {
		err := msg.AttachReader(
			attachment.FileName,
			bytes.NewReader(attachment.Content),
			mail.WithFileContentType(mail.ContentType(attachment.ContentType)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", attachment.FileName, err)
		}
	}

	return msg, nil
}
