package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agriassist/internal/cases"
	"agriassist/internal/language"
)

const openAIAPIURL = "https://api.openai.com/v1/chat/completions"

// VisionClient analyzes an encoded crop photo with an external reasoning
// model. A single attempt is made per image; callers decide what a failure
// means.
type VisionClient interface {
	Diagnose(ctx context.Context, imageB64 string, lang language.Code) (*cases.Diagnosis, error)
}

type openAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient returns a VisionClient backed by the OpenAI chat
// completions API.
func NewOpenAIClient(apiKey, model string) VisionClient {
	return &openAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Diagnose(ctx context.Context, imageB64 string, lang language.Code) (*cases.Diagnosis, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(lang)},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userPromptText},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + imageB64,
				}},
			}},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      600,
		Temperature:    0.3,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model API error: %s - %s", resp.Status, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, cases.ErrEmptyModelResponse
	}

	raw := strings.TrimSpace(parsed.Choices[0].Message.Content)
	var diag cases.Diagnosis
	if err := json.Unmarshal([]byte(raw), &diag); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return &diag, nil
}
