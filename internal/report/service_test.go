package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"agriassist/internal/cases"
)

type fakeSender struct {
	to   string
	body string
	sent int
}

func (f *fakeSender) SendMessage(_ context.Context, to, body, _ string) error {
	f.to = to
	f.body = body
	f.sent++
	return nil
}

func escalatedCase() *cases.Case {
	return &cases.Case{
		ID:            7,
		Phone:         "whatsapp:+910000000001",
		Timestamp:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		DiagnosisJSON: `{"diagnosis":"Leaf Blight","english_name":"Leaf Blight","confidence":90,"escalate":true}`,
		Escalated:     true,
	}
}

func TestNotifyExpert(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "whatsapp:+919999999999")

	if err := svc.NotifyExpert(context.Background(), escalatedCase()); err != nil {
		t.Fatalf("NotifyExpert failed: %v", err)
	}
	if sender.to != "whatsapp:+919999999999" {
		t.Errorf("sent to %q", sender.to)
	}
	for _, want := range []string{"Case #7", "whatsapp:+910000000001", "Leaf Blight"} {
		if !strings.Contains(sender.body, want) {
			t.Errorf("alert %q missing %q", sender.body, want)
		}
	}
}

func TestNotifyExpert_SentinelDiagnosis(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "whatsapp:+919999999999")

	c := escalatedCase()
	c.DiagnosisJSON = `{"diagnosis":"AI failed","escalate":true}`
	if err := svc.NotifyExpert(context.Background(), c); err != nil {
		t.Fatalf("NotifyExpert failed: %v", err)
	}
	if !strings.Contains(sender.body, "AI failed") {
		t.Errorf("alert should carry the sentinel marker: %q", sender.body)
	}
}

func TestNotifyExpert_DisabledWithoutNumber(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "")

	if err := svc.NotifyExpert(context.Background(), escalatedCase()); err != nil {
		t.Fatalf("NotifyExpert failed: %v", err)
	}
	if sender.sent != 0 {
		t.Error("no alert should be sent when the expert number is unset")
	}
}
