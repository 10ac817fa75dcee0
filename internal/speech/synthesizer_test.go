package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agriassist/internal/language"
)

type fakeTTS struct {
	audio []byte
	err   error
}

func (f *fakeTTS) Synthesize(_ context.Context, _ string, _ language.Code) ([]byte, error) {
	return f.audio, f.err
}

func TestSynthesize_WritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSynthesizer(&fakeTTS{audio: []byte("mp3data")}, dir, "https://example.test/audio")
	if err != nil {
		t.Fatalf("NewSynthesizer failed: %v", err)
	}

	url := s.Synthesize(context.Background(), "नमस्ते", language.Hindi)
	if url == "" {
		t.Fatal("expected a URL")
	}
	if !strings.HasPrefix(url, "https://example.test/audio/") || !strings.HasSuffix(url, ".mp3") {
		t.Errorf("unexpected URL shape: %q", url)
	}

	name := strings.TrimPrefix(url, "https://example.test/audio/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("audio file missing: %v", err)
	}
	if string(data) != "mp3data" {
		t.Errorf("file content = %q", data)
	}
}

func TestSynthesize_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSynthesizer(&fakeTTS{audio: []byte("x")}, dir, "https://example.test/audio")
	if err != nil {
		t.Fatalf("NewSynthesizer failed: %v", err)
	}
	a := s.Synthesize(context.Background(), "a", language.Tamil)
	b := s.Synthesize(context.Background(), "a", language.Tamil)
	if a == b {
		t.Errorf("two syntheses produced the same URL: %q", a)
	}
}

func TestSynthesize_FailureReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSynthesizer(&fakeTTS{err: errors.New("voice down")}, dir, "https://example.test/audio")
	if err != nil {
		t.Fatalf("NewSynthesizer failed: %v", err)
	}
	if url := s.Synthesize(context.Background(), "hello", language.Hindi); url != "" {
		t.Errorf("failure should yield empty URL, got %q", url)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no file should be written on failure, found %d", len(entries))
	}
}
