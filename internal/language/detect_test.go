package language

import "testing"

func testDetector() *Detector {
	return NewDetector(Hindi, "+91", []string{"41", "44", "45", "46", "47", "48", "49"}, Tamil)
}

func TestDetect_KeywordPriority(t *testing.T) {
	d := testDetector()

	tests := []struct {
		name   string
		sender string
		body   string
		want   Code
	}{
		{"tamil keyword", "whatsapp:+15550001111", "please reply in Tamil", Tamil},
		{"tamil script keyword", "whatsapp:+15550001111", "தமிழ்", Tamil},
		{"hindi keyword", "whatsapp:+15550001111", "hindi please", Hindi},
		{"hindi script keyword", "whatsapp:+15550001111", "हिंदी", Hindi},
		{"keyword beats region", "whatsapp:+914412345678", "hindi", Hindi},
		{"case insensitive", "whatsapp:+15550001111", "TAMIL", Tamil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.sender, tt.body); got != tt.want {
				t.Errorf("Detect(%q, %q) = %q, want %q", tt.sender, tt.body, got, tt.want)
			}
		})
	}
}

func TestDetect_RegionAreaCodes(t *testing.T) {
	d := testDetector()

	tests := []struct {
		name   string
		sender string
		want   Code
	}{
		{"chennai area code", "whatsapp:+914412345678", Tamil},
		{"vellore area code", "whatsapp:+914112345678", Tamil},
		{"unrecognized area code", "whatsapp:+919812345678", Hindi},
		{"bare number with prefix", "+914512345678", Tamil},
		{"other country defaults", "whatsapp:+15550001111", Hindi},
		{"too short to carry area code", "whatsapp:+914", Hindi},
		{"empty sender", "", Hindi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.sender, "crop photo"); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.sender, got, tt.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	d := testDetector()
	first := d.Detect("whatsapp:+914412345678", "what is wrong with my crop")
	for i := 0; i < 50; i++ {
		if got := d.Detect("whatsapp:+914412345678", "what is wrong with my crop"); got != first {
			t.Fatalf("detection is not deterministic: got %q then %q", first, got)
		}
	}
}

func TestDetect_ConfigurableFallback(t *testing.T) {
	d := NewDetector(Tamil, "+91", nil, Tamil)
	if got := d.Detect("whatsapp:+15550001111", ""); got != Tamil {
		t.Errorf("fallback = %q, want %q", got, Tamil)
	}
}
