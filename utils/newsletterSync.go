package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"sattva/config"
)

// SyncNewsletterSubscriber pushes a new contact to the configured newsletter
// provider. A blank provider URL disables syncing.
func SyncNewsletterSubscriber(email string) error {
	if config.AppConfig.NewsletterApiURL == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.NewsletterApiKey).
		SetBody(map[string]string{"email": email}).
		Post(config.AppConfig.NewsletterApiURL + "/subscribers")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("newsletter provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
