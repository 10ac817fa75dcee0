// Package speech turns reply text into a publicly addressable MP3 file.
// Audio is a best-effort enhancement: every failure is logged and swallowed
// so the pipeline can reply text-only.
package speech

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"agriassist/internal/agent"
	"agriassist/internal/language"
)

type Synthesizer struct {
	tts     agent.TTSClient
	dir     string
	baseURL string
}

// NewSynthesizer writes MP3 files into dir; baseURL is the public prefix
// under which dir is served, so a file becomes baseURL + "/" + name.
func NewSynthesizer(tts agent.TTSClient, dir, baseURL string) (*Synthesizer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Synthesizer{tts: tts, dir: dir, baseURL: baseURL}, nil
}

// Synthesize returns the public URL of the generated audio, or "" when
// synthesis or the file write fails.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, lang language.Code) string {
	audio, err := s.tts.Synthesize(ctx, text, lang)
	if err != nil {
		log.Printf("speech synthesis failed: %v", err)
		return ""
	}

	name := uuid.New().String() + ".mp3"
	if err := os.WriteFile(filepath.Join(s.dir, name), audio, 0o644); err != nil {
		log.Printf("failed to write audio file: %v", err)
		return ""
	}

	return s.baseURL + "/" + name
}
