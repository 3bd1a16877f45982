package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

type EmailData struct {
	Name     string
	Message  string
	LinkURL  string
	LinkText string
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Konfort Total</h2>
    <p>Hola {{.Name}},</p>
    <p>{{.Message}}</p>
    <p><a href="{{.LinkURL}}" style="background:#b07d4f;color:#fff;padding:10px 20px;text-decoration:none;border-radius:4px;">{{.LinkText}}</a></p>
    <p>Si no solicitaste este correo, puedes ignorarlo.</p>
  </body>
</html>`))

func SendEmail(emailTo string, emailSubject string, data EmailData) error {
	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func SendPasswordResetEmail(emailTo, name, resetURL string) error {
	return SendEmail(emailTo, "Restablecer contraseña - Konfort Total", EmailData{
		Name:     name,
		Message:  "Recibimos una solicitud para restablecer tu contraseña. Haz clic en el botón para continuar.",
		LinkURL:  resetURL,
		LinkText: "Restablecer contraseña",
	})
}
