// Package language holds the closed set of reply languages and everything
// keyed by them: detection, model instructions and the fixed phrases used in
// farmer-facing messages.
package language

// Code identifies a supported reply language.
type Code string

const (
	Tamil Code = "ta"
	Hindi Code = "hi"
)

// Pack bundles every language-specific string the pipeline needs. Adding a
// language means adding one Pack; PackFor falls back to the default pack for
// codes it does not know, so a missing entry degrades instead of crashing.
type Pack struct {
	Code Code

	// Instruction is appended to the model system prompt to pin the output
	// language and script.
	Instruction string

	// ReplyTemplate renders a diagnosis: name, english name, confidence,
	// joined treatment steps, cost.
	ReplyTemplate string

	Greeting         string
	Wait             string
	DownloadFailed   string
	CannotUnderstand string
	Unknown          string
}

var packs = map[Code]Pack{
	Tamil: {
		Code:             Tamil,
		Instruction:      "Respond in **simple rural Tamil** using Tamil script.",
		ReplyTemplate:    "நோய்: %s\nஆங்கிலம்: %s\nநம்பிக்கை: %d%%\nசிகிச்சை: %s\nசெலவு: ₹%d",
		Greeting:         "வணக்கம்! பயிர் புகைப்படம் அனுப்பவும்.",
		Wait:             "தயவு செய்து 2 நிமிடம் காத்திருக்கவும்.",
		DownloadFailed:   "படத்தை பதிவிறக்க முடியவில்லை.",
		CannotUnderstand: "மன்னிக்கவும், படத்தை புரிந்து கொள்ள முடியவில்லை.",
		Unknown:          "தெரியவில்லை",
	},
	Hindi: {
		Code:             Hindi,
		Instruction:      "Respond in **simple rural Hindi** using Devanagari script.",
		ReplyTemplate:    "रोग: %s\nअंग्रेजी: %s\nविश्वास: %d%%\nइलाज: %s\nलागत: ₹%d",
		Greeting:         "नमस्ते! फसल का फोटो भेजें।",
		Wait:             "कृपया 2 मिनट प्रतीक्षा करें।",
		DownloadFailed:   "फोटो डाउनलोड नहीं हो सका।",
		CannotUnderstand: "क्षमा करें, फोटो समझ नहीं आया।",
		Unknown:          "अज्ञात",
	},
}

// DefaultCode is used when a pack lookup misses entirely.
const DefaultCode = Hindi

// PackFor returns the pack for code, falling back to the default language.
func PackFor(code Code) Pack {
	if p, ok := packs[code]; ok {
		return p
	}
	return packs[DefaultCode]
}

// Supported reports whether code has a pack of its own.
func Supported(code Code) bool {
	_, ok := packs[code]
	return ok
}
