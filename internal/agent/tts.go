package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agriassist/internal/language"
)

const translateTTSURL = "https://translate.google.com/translate_tts"

// TTSClient converts reply text into MP3 audio.
type TTSClient interface {
	Synthesize(ctx context.Context, text string, lang language.Code) ([]byte, error)
}

type googleTTSClient struct {
	httpClient *http.Client
}

// NewGoogleTTSClient returns a TTSClient backed by the Google Translate
// text-to-speech endpoint, which covers the Tamil and Hindi voices.
func NewGoogleTTSClient() TTSClient {
	return &googleTTSClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *googleTTSClient) Synthesize(ctx context.Context, text string, lang language.Code) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", string(lang))
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, translateTTSURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error: %s - %s", resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}
