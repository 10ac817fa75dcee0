package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"agriassist/internal/language"
)

// ErrEmptyModelResponse is returned by a Diagnoser when the model call
// succeeded but carried no usable content. The pipeline records it with its
// own sentinel marker.
var ErrEmptyModelResponse = errors.New("model returned empty content")

// MediaFetcher retrieves a provider media reference as base64 image text.
type MediaFetcher interface {
	Fetch(ctx context.Context, mediaURL string) (string, error)
}

// Diagnoser analyzes an encoded crop photo in the given reply language.
type Diagnoser interface {
	Diagnose(ctx context.Context, imageB64 string, lang language.Code) (*Diagnosis, error)
}

// SpeechSynthesizer turns reply text into a public audio URL; an empty
// string means no audio is available.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, lang language.Code) string
}

// EscalationNotifier alerts a human expert about an escalated case.
type EscalationNotifier interface {
	NotifyExpert(ctx context.Context, c *Case) error
}

// Inbound is one webhook event from the messaging provider.
type Inbound struct {
	From     string
	Body     string
	MediaURL string
}

// Reply is what the sender receives back.
type Reply struct {
	Text     string
	AudioURL string
}

// Service runs the inbound-message pipeline: rate-limit gate, media fetch,
// diagnosis, localized reply, best-effort speech, persistence.
type Service struct {
	store    Store
	detector *language.Detector
	fetcher  MediaFetcher
	ai       Diagnoser
	speech   SpeechSynthesizer
	reports  EscalationNotifier
}

// NewService wires the pipeline. speech and reports may be nil; both are
// best-effort stages.
func NewService(store Store, detector *language.Detector, fetcher MediaFetcher, ai Diagnoser, speech SpeechSynthesizer, reports EscalationNotifier) *Service {
	return &Service{
		store:    store,
		detector: detector,
		fetcher:  fetcher,
		ai:       ai,
		speech:   speech,
		reports:  reports,
	}
}

// Process handles one inbound event. Stage failures short-circuit into a
// localized rejection; only a storage error is returned to the caller. No
// case is persisted for a rejected image.
func (s *Service) Process(ctx context.Context, in Inbound) (Reply, error) {
	phone := NormalizePhone(in.From)
	lang := s.detector.Detect(phone, in.Body)
	pack := language.PackFor(lang)

	// Text-only message: greet, no admission consumed.
	if in.MediaURL == "" {
		return Reply{Text: pack.Greeting}, nil
	}

	now := time.Now().UTC()
	admitted, err := s.store.Admit(ctx, phone, now)
	if err != nil {
		return Reply{}, fmt.Errorf("admission check failed: %w", err)
	}
	if !admitted {
		return Reply{Text: pack.Wait}, nil
	}

	imageB64, err := s.fetcher.Fetch(ctx, in.MediaURL)
	if err != nil {
		log.Printf("media fetch rejected for %s: %v", phone, err)
		return Reply{Text: pack.DownloadFailed}, nil
	}

	diag, err := s.ai.Diagnose(ctx, imageB64, lang)
	if err != nil {
		// Failure is not fatal here: the image still becomes a case, with
		// the sentinel diagnosis and a forced escalation.
		log.Printf("diagnosis failed for %s: %v", phone, err)
		marker := MarkerModelFailed
		if errors.Is(err, ErrEmptyModelResponse) {
			marker = MarkerEmptyResponse
		}
		diag = FallbackDiagnosis(marker)
	}

	text := ComposeReply(diag, pack)

	var audioURL string
	if s.speech != nil {
		audioURL = s.speech.Synthesize(ctx, text, lang)
	}

	diagJSON, err := json.Marshal(diag)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to serialize diagnosis: %w", err)
	}
	c := &Case{
		Phone:         phone,
		Timestamp:     now,
		ImageB64:      imageB64,
		DiagnosisJSON: string(diagJSON),
		Escalated:     diag.Escalate,
	}
	if _, err := s.store.Record(ctx, c); err != nil {
		return Reply{}, fmt.Errorf("failed to record case: %w", err)
	}

	if c.Escalated {
		s.notifyExpert(c)
	}

	return Reply{Text: text, AudioURL: audioURL}, nil
}

// EscalateCase flags a case for expert review. Idempotent; ErrNotFound for
// unknown ids.
func (s *Service) EscalateCase(ctx context.Context, id int64) error {
	if err := s.store.Escalate(ctx, id); err != nil {
		return err
	}
	if c, err := s.store.Get(ctx, id); err == nil {
		s.notifyExpert(c)
	}
	return nil
}

// ListCases returns cases for the review surface.
func (s *Service) ListCases(ctx context.Context, f Filter) ([]Case, error) {
	return s.store.List(ctx, f)
}

// GetCase returns one case by id.
func (s *Service) GetCase(ctx context.Context, id int64) (*Case, error) {
	return s.store.Get(ctx, id)
}

// notifyExpert runs in the background so a slow provider call never delays
// the reply.
func (s *Service) notifyExpert(c *Case) {
	if s.reports == nil {
		return
	}
	snapshot := *c
	go func() {
		if err := s.reports.NotifyExpert(context.Background(), &snapshot); err != nil {
			log.Printf("expert notification failed for case %d: %v", snapshot.ID, err)
		}
	}()
}
