// Package media retrieves inbound photo attachments from the messaging
// provider and re-encodes them for embedding in a model request.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTooSmall marks payloads below the plausible-photo floor (stickers,
// thumbnails, non-photo attachments) so callers can reject them before
// spending a model call.
var ErrTooSmall = errors.New("media payload below minimum image size")

type Fetcher struct {
	accountSID string
	authToken  string
	minBytes   int
	httpClient *http.Client
}

// NewFetcher builds a Fetcher that authenticates with the provider account
// credentials and rejects payloads smaller than minBytes.
func NewFetcher(accountSID, authToken string, minBytes int, timeout time.Duration) *Fetcher {
	return &Fetcher{
		accountSID: accountSID,
		authToken:  authToken,
		minBytes:   minBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the media reference and returns the payload as standard
// base64 text. A payload of exactly the floor size is accepted; anything
// smaller is rejected with ErrTooSmall.
func (f *Fetcher) Fetch(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(f.accountSID, f.authToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("media download returned status: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("media read failed: %w", err)
	}
	if len(payload) < f.minBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooSmall, len(payload))
	}

	return base64.StdEncoding.EncodeToString(payload), nil
}
