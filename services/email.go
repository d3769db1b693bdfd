package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"casepilot/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API. In test mode the email is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers never block on the
// email provider.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// BuildCaseOpenedEmail notifies a client that a case has been opened on
// their behalf.
func BuildCaseOpenedEmail(clientEmail, clientName, caseRef, caseTitle string) *Email {
	text := fmt.Sprintf(
		"Dear %s,\n\nA new case has been opened on your behalf.\n\nReference: %s\nTitle: %s\n\nYour legal team will be in touch with next steps.\n",
		clientName, caseRef, caseTitle,
	)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>A new case has been opened on your behalf.</p><p><strong>Reference:</strong> %s<br><strong>Title:</strong> %s</p><p>Your legal team will be in touch with next steps.</p>",
		clientName, caseRef, caseTitle,
	)
	return &Email{
		To:       []string{clientEmail},
		Subject:  fmt.Sprintf("Your case %s has been opened", caseRef),
		TextBody: text,
		HTMLBody: html,
	}
}

// BuildHearingScheduledEmail notifies a client about a newly scheduled
// hearing date.
func BuildHearingScheduledEmail(clientEmail, clientName, caseRef, court string, hearingDate time.Time) *Email {
	when := hearingDate.Format("Monday, 2 January 2006")
	text := fmt.Sprintf(
		"Dear %s,\n\nA hearing has been scheduled for your case %s.\n\nDate: %s\nCourt: %s\n\nYour legal team will contact you with preparation details.\n",
		clientName, caseRef, when, court,
	)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>A hearing has been scheduled for your case <strong>%s</strong>.</p><p><strong>Date:</strong> %s<br><strong>Court:</strong> %s</p><p>Your legal team will contact you with preparation details.</p>",
		clientName, caseRef, when, court,
	)
	return &Email{
		To:       []string{clientEmail},
		Subject:  fmt.Sprintf("Hearing scheduled for case %s", caseRef),
		TextBody: text,
		HTMLBody: html,
	}
}

func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 60)
	log.Printf("\n%s\nEMAIL (test mode - not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Body:\n%s\n%s", email.TextBody, separator)
}
