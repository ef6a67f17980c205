package service

import (
	"bytes"
	"fmt"
	"hotel/internal/domains/contact/model"
	"html/template"
)

const subjectNewContact = "New Contact Message"

var contactTemplate = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #e94e1b;">New message from {{.FullName}}</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 6px 12px; font-weight: bold;">Email</td><td style="padding: 6px 12px;">{{.Email}}</td></tr>
    {{- if .Number}}
    <tr><td style="padding: 6px 12px; font-weight: bold;">Phone</td><td style="padding: 6px 12px;">{{.Number}}</td></tr>
    {{- end}}
  </table>
  <p style="white-space: pre-line;">{{.Message}}</p>
</div>`))

type contactMail struct {
	FullName string
	Email    string
	Number   string
	Message  string
}

func renderContact(contact model.Contact) (string, error) {
	data := contactMail{
		FullName: contact.FullName,
		Email:    contact.Email,
		Message:  contact.Message,
	}

	if contact.Number != nil {
		data.Number = *contact.Number
	}

	var buf bytes.Buffer

	if err := contactTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render contact mail: %w", err)
	}

	return buf.String(), nil
}
