package service

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

const (
	subjectVerifyEmail   = "Verify your email"
	subjectResetPassword = "Password Reset"

	pathVerifyEmail   = "/verify-email"
	pathResetPassword = "/reset-password"
)

var (
	verifyEmailTemplate = template.Must(template.New("verify").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #4a90e2;">Welcome to {{.HotelName}}</h2>
  <p>Hi {{.Name}},</p>
  <p>Please confirm your email address by following the link below:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>This link will expire in {{.ExpiresIn}}.</p>
</div>`))

	resetPasswordTemplate = template.Must(template.New("reset").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
  <p>You requested a password reset. Click the link below to reset your password:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>This link will expire in {{.ExpiresIn}}.</p>
  <p>If you did not request this, you can ignore this email.</p>
</div>`))
)

type linkMail struct {
	HotelName string
	Name      string
	Link      string
	ExpiresIn string
}

func tokenLink(baseURL, path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", strings.TrimRight(baseURL, "/"), path, url.QueryEscape(token))
}

func describeMinutes(minutes int) string {
	const minutesPerHour = 60

	if minutes%minutesPerHour == 0 {
		hours := minutes / minutesPerHour
		if hours == 1 {
			return "1 hour"
		}

		return fmt.Sprintf("%d hours", hours)
	}

	return fmt.Sprintf("%d minutes", minutes)
}

func render(tmpl *template.Template, data linkMail) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s mail: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
