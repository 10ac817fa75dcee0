// Package config centralizes how AgriAssist reads environment variables and
// exposes them as strongly typed Go values.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration for the service.
type Config struct {
	Port        string
	DatabaseURL string

	OpenAIKey   string
	OpenAIModel string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioWhatsApp   string
	ExpertWhatsApp   string

	// PublicBaseURL is the externally reachable root of this service
	// (historically the tunnel URL). AudioBaseURL is derived from it and
	// already includes the /audio mount, so a synthesized file is addressed
	// as AudioBaseURL + "/" + filename.
	PublicBaseURL string
	AudioBaseURL  string
	AudioDir      string

	RateLimitCooldown time.Duration
	MediaTimeout      time.Duration
	MinImageBytes     int

	DefaultLanguage string
	RegionPrefix    string
	RegionAreaCodes []string
	RegionLanguage  string
}

const (
	defaultPort          = "8000"
	defaultModel         = "gpt-4o"
	defaultAudioDir      = "public_audio"
	defaultCooldown      = 2 * time.Minute
	defaultMediaTimeout  = 12 * time.Second
	defaultMinImageBytes = 20_000
	defaultLanguage      = "hi"
	defaultRegionPrefix  = "+91"
	// Tamil Nadu landline-style area codes; senders whose number starts with
	// one of these right after the country prefix get Tamil replies.
	defaultAreaCodes      = "41,44,45,46,47,48,49"
	defaultRegionLanguage = "ta"
)

// Load reads configuration from environment variables falling back to
// defaults. It never fails: missing credentials are surfaced later by the
// components that need them.
func Load() *Config {
	cfg := &Config{
		Port:        readEnv("PORT", defaultPort),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: readEnv("OPENAI_MODEL", defaultModel),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsApp:   os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		ExpertWhatsApp:   os.Getenv("EXPERT_WHATSAPP"),

		PublicBaseURL: strings.TrimRight(readEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),
		AudioDir:      readEnv("AUDIO_DIR", defaultAudioDir),

		RateLimitCooldown: parseDuration("RATE_LIMIT_COOLDOWN", defaultCooldown),
		MediaTimeout:      parseDuration("MEDIA_TIMEOUT", defaultMediaTimeout),
		MinImageBytes:     parseInt("MIN_IMAGE_BYTES", defaultMinImageBytes),

		DefaultLanguage: readEnv("DEFAULT_LANGUAGE", defaultLanguage),
		RegionPrefix:    readEnv("REGION_PREFIX", defaultRegionPrefix),
		RegionAreaCodes: parseList("REGION_AREA_CODES", defaultAreaCodes),
		RegionLanguage:  readEnv("REGION_LANGUAGE", defaultRegionLanguage),
	}
	cfg.AudioBaseURL = cfg.PublicBaseURL + "/audio"
	if v := os.Getenv("AUDIO_BASE_URL"); v != "" {
		cfg.AudioBaseURL = strings.TrimRight(v, "/")
	}
	return cfg
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseList(key, def string) []string {
	val := readEnv(key, def)
	out := strings.Split(val, ",")
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
