package cases

import (
	"encoding/json"
	"strings"
	"time"
)

// Diagnosis is the structured result of one model analysis. Missing fields
// keep their zero values; the JSON tags match the schema the model is
// instructed to return.
type Diagnosis struct {
	Name           string   `json:"diagnosis"`
	EnglishName    string   `json:"english_name"`
	Confidence     int      `json:"confidence"`
	SymptomsMatch  []string `json:"symptoms_match"`
	TreatmentSteps []string `json:"treatment_steps"`
	EstimatedCost  int      `json:"estimated_cost_inr"`
	Precautions    string   `json:"precautions"`
	Escalate       bool     `json:"escalate"`
}

// Sentinel markers stored as the diagnosis name when the model produced
// nothing usable. Every image past admission and fetch produces a recorded
// case, and these cases are always escalated for human review.
const (
	MarkerEmptyResponse = "AI returned empty"
	MarkerModelFailed   = "AI failed"
)

// FallbackDiagnosis builds the escalate-true sentinel for a failed analysis.
func FallbackDiagnosis(marker string) *Diagnosis {
	return &Diagnosis{Name: marker, Escalate: true}
}

// Case is one recorded image-diagnosis interaction. ID is assigned on
// insertion and strictly increasing; only Escalated is mutable afterwards,
// and only from false to true.
type Case struct {
	ID            int64     `json:"id"`
	Phone         string    `json:"phone"`
	Timestamp     time.Time `json:"timestamp"`
	ImageB64      string    `json:"image_b64"`
	DiagnosisJSON string    `json:"diagnosis_json"`
	Escalated     bool      `json:"escalated"`
}

// ParseDiagnosis decodes the stored diagnosis JSON.
func (c *Case) ParseDiagnosis() (*Diagnosis, error) {
	var d Diagnosis
	if err := json.Unmarshal([]byte(c.DiagnosisJSON), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// NormalizePhone canonicalizes a sender address to the channel-prefixed form
// used as the rate-limit and case key.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "whatsapp:") {
		phone = "whatsapp:" + phone
	}
	return phone
}
