package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"sattva/config"
)

// SendEmail delivers an HTML email through SendGrid when an API key is
// configured, falling back to plain SMTP
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridApiKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("Sattva", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email, response code: %d", resp.StatusCode)
			return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Sattva <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared email shell
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F7F5F0; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #2D4A3E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #2D4A3E; line-height: 1.6; }
			.footer { padding: 20px 30px; color: #8A8A8A; font-size: 12px; text-align: center; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this because you started a Sattva program.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendPracticeReminder emails a user that today's practice day is waiting
func SendPracticeReminder(email, name, programTitle string, day int) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Day %d of <strong>%s</strong> is waiting for you.</p>
		<p><a href="%s">Continue your practice</a></p>`,
		name, day, programTitle, config.AppConfig.BaseURL)

	return SendEmail([]string{email}, fmt.Sprintf("Day %d of %s", day, programTitle), getEmailTemplate(programTitle, body))
}
