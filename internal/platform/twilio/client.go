package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBaseURL = "https://api.twilio.com/2010-04-01"

// Client sends outbound WhatsApp messages through the Twilio REST API.
type Client struct {
	AccountSID string
	authToken  string
	From       string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client sending from the given whatsapp: address.
func NewClient(accountSID, authToken, from string) *Client {
	return &Client{
		AccountSID: accountSID,
		authToken:  authToken,
		From:       from,
		baseURL:    apiBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendMessage delivers a text message, optionally with a media attachment
// URL, to a whatsapp: address.
func (c *Client) SendMessage(ctx context.Context, to, body, mediaURL string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.AccountSID)

	form := url.Values{}
	form.Set("From", c.From)
	form.Set("To", to)
	form.Set("Body", body)
	if mediaURL != "" {
		form.Set("MediaUrl", mediaURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.AccountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send twilio message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
		}
		return fmt.Errorf("twilio api returned status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	return nil
}
