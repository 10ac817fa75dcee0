package language

import "strings"

// keywordRules are checked against the lowercased body in this order; the
// first hit wins.
var keywordRules = []struct {
	code     Code
	keywords []string
}{
	{Tamil, []string{"tamil", "தமிழ்", "ta"}},
	{Hindi, []string{"hindi", "हिंदी", "hi"}},
}

// Detector picks a reply language from the sender address and message body.
// It is pure: identical inputs always yield the same code.
type Detector struct {
	// Fallback is returned when nothing else matches.
	Fallback Code

	// RegionPrefix is the one country prefix with region-aware routing
	// (all other international numbers get Fallback regardless of locale).
	RegionPrefix    string
	RegionAreaCodes map[string]struct{}
	RegionLanguage  Code
}

// NewDetector builds a Detector; areaCodes is the set of two-digit codes
// following the country prefix that select regionLang.
func NewDetector(fallback Code, regionPrefix string, areaCodes []string, regionLang Code) *Detector {
	set := make(map[string]struct{}, len(areaCodes))
	for _, c := range areaCodes {
		set[c] = struct{}{}
	}
	return &Detector{
		Fallback:        fallback,
		RegionPrefix:    regionPrefix,
		RegionAreaCodes: set,
		RegionLanguage:  regionLang,
	}
}

// Detect returns a supported language code, never an error. Priority:
// explicit language keywords in the body, then the sender's area code when
// the number carries the recognized country prefix, then the fallback.
func (d *Detector) Detect(sender, body string) Code {
	low := strings.ToLower(body)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(low, kw) {
				return rule.code
			}
		}
	}

	num := strings.TrimPrefix(strings.TrimSpace(sender), "whatsapp:")
	if d.RegionPrefix != "" && strings.HasPrefix(num, d.RegionPrefix) {
		area := num[len(d.RegionPrefix):]
		if len(area) >= 2 {
			if _, ok := d.RegionAreaCodes[area[:2]]; ok {
				return d.RegionLanguage
			}
		}
	}

	return d.Fallback
}
