package twilio

import (
	"strings"
	"testing"
)

func TestRenderMessagingResponse(t *testing.T) {
	out, err := RenderMessagingResponse("नमस्ते", "https://example.test/audio/a.mp3")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc := string(out)
	for _, want := range []string{
		"<Response>", "<Message>", "<Body>नमस्ते</Body>",
		"<Media>https://example.test/audio/a.mp3</Media>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document %q missing %q", doc, want)
		}
	}
}

func TestRenderMessagingResponse_NoMedia(t *testing.T) {
	out, err := RenderMessagingResponse("hello", "")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(string(out), "<Media>") {
		t.Errorf("media element must be omitted when empty: %q", out)
	}
}

func TestRenderMessagingResponse_EscapesMarkup(t *testing.T) {
	out, err := RenderMessagingResponse("5 < 10 & more", "")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(string(out), "5 < 10") {
		t.Errorf("body must be XML-escaped: %q", out)
	}
}
