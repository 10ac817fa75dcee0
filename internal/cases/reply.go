package cases

import (
	"fmt"
	"strings"

	"agriassist/internal/language"
)

// ComposeReply renders a diagnosis as the farmer-facing message in the given
// language pack. It is total: every diagnosis shape, including nil and the
// failure sentinel, yields a non-empty string.
func ComposeReply(d *Diagnosis, pack language.Pack) string {
	if d == nil || d.Escalate {
		return pack.CannotUnderstand
	}

	name := d.Name
	if name == "" {
		name = pack.Unknown
	}
	steps := d.TreatmentSteps
	if len(steps) == 0 {
		steps = []string{pack.Unknown}
	}

	return fmt.Sprintf(pack.ReplyTemplate,
		name, d.EnglishName, d.Confidence, strings.Join(steps, ", "), d.EstimatedCost)
}
