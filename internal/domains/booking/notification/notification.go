// Package notification composes the HTML bodies of booking emails.
package notification

import (
	"bytes"
	"errors"
	"fmt"
	"hotel/internal/domains/booking/summary"
	"html/template"
)

type Audience string

const (
	AudienceGuest Audience = "guest"
	AudienceAdmin Audience = "admin"
)

const (
	SubjectGuest = "Booking Confirmation"
	SubjectAdmin = "New Booking Alert"
)

var ErrUnknownAudience = errors.New("unknown notification audience")

type theme struct {
	Color    string
	RowColor string
	Heading  string
	Greeting bool
	Intro    string
	Closing  bool
}

var themes = map[Audience]theme{
	AudienceGuest: {
		Color:    "#4a90e2",
		RowColor: "#f0f8ff",
		Heading:  "Booking Confirmation",
		Greeting: true,
		Intro:    "Thank you for your booking. Here are your booking details:",
		Closing:  true,
	},
	AudienceAdmin: {
		Color:    "#e94e1b",
		RowColor: "#f8d7da",
		Heading:  "HELLO ADMIN",
		Intro:    "A new booking has been made with the following details:",
	},
}

var body = template.Must(template.New("booking").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: {{.Theme.Color}};">{{.Theme.Heading}}</h2>
  {{- if .Theme.Greeting}}
  <p>Dear {{.Name}},</p>
  {{- end}}
  <p>{{.Theme.Intro}}</p>
  <table style="border-collapse: collapse; width: 100%; max-width: 600px;">
    <tr style="background-color: {{.Theme.Color}}; color: white;">
      <th style="padding: 8px; text-align: left;">Field</th>
      <th style="padding: 8px; text-align: left;">Details</th>
    </tr>
    {{- range .Fields}}
    <tr style="background-color: {{$.Theme.RowColor}};">
      <td style="padding: 8px;">{{.Label}}</td>
      <td style="padding: 8px;">{{.Value}}</td>
    </tr>
    {{- end}}
  </table>
  {{- if .Theme.Closing}}
  <p style="margin-top: 20px;">We look forward to hosting you!</p>
  <p>Best Regards,<br/>Your Hotel Team</p>
  {{- end}}
</div>`))

type Composer interface {
	Compose(audience Audience, recipientName string, fields []summary.Field) (string, error)
}

type htmlComposer struct{}

func New() Composer {
	return htmlComposer{}
}

func (htmlComposer) Compose(audience Audience, recipientName string, fields []summary.Field) (string, error) {
	t, ok := themes[audience]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAudience, audience)
	}

	var buf bytes.Buffer

	err := body.Execute(&buf, struct {
		Theme  theme
		Name   string
		Fields []summary.Field
	}{t, recipientName, fields})
	if err != nil {
		return "", fmt.Errorf("failed to compose %s notification: %w", audience, err)
	}

	return buf.String(), nil
}
