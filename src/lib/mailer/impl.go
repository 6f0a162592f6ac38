package mailer

import (
	"fmt"
	"lrs/src/lib"
	"os"
)

// NewMailerMessage hands a booking email to the outbound channel. In local
// environments the message goes straight over SMTP; otherwise it is queued on
// the email topic for the broker-side sender.
func NewMailerMessage(input *lib.SendMailInput) error {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		if err := lib.SendMail(input); err != nil {
			return fmt.Errorf("error sending mail: %s", err.Error())
		}
		return nil
	}
	emailBody := map[string]any{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	emailTopic := os.Getenv("EMAIL_TOPIC")
	if err := lib.KafkaProduceMessage("emails", emailTopic, emailBody); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}
