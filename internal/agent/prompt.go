package agent

import (
	"fmt"
	"strings"

	"agriassist/internal/language"
)

// systemPromptTemplate forces a single JSON object in the requested
// language; the field names must match cases.Diagnosis.
const systemPromptTemplate = `
You are AgriAssist, an AI agronomist for Indian farmers.
Analyze the crop image and return **only** a valid JSON object.

Fields (use the language requested – Tamil script for "ta", Devanagari for "hi"):
{
  "diagnosis": "நோய் பெயர்" or "रोग का नाम",
  "english_name": "English name",
  "confidence": 85,
  "symptoms_match": ["இலைகளில் பழுப்பு புள்ளிகள்"],
  "treatment_steps": ["1. 50 கிராம்..."],
  "estimated_cost_inr": 150,
  "precautions": "கையுறை அணியவும்",
  "escalate": false
}

Language instruction: %s
`

// userPromptText is the fixed text paired with the image in the user turn.
const userPromptText = "Analyze this crop photo. Return JSON only."

func systemPrompt(lang language.Code) string {
	pack := language.PackFor(lang)
	return strings.TrimSpace(fmt.Sprintf(systemPromptTemplate, pack.Instruction))
}
