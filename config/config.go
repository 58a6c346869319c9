package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fixed synthesis defaults. Rate is words per minute, volume is a
// 0.0–1.0 gain applied to the generated audio.
const (
	DefaultModelName   = "llama3-70b-8192"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultVoiceRate   = 200
	DefaultVoiceVolume = 0.9
	DefaultCallTimeout = 30 * time.Second
)

// ErrMissingCredential is returned by Load when a required API key is
// absent. It is fatal at startup: the process must not serve without it.
var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	GroqAPIKey       string
	DeepgramAPIKey   string
	ElevenLabsAPIKey string
	GeminiAPIKey     string

	ModelName   string
	MaxTokens   int
	Temperature float32

	VoiceID     string
	VoiceRate   int
	VoiceVolume float64

	CallTimeout time.Duration
}

// Init wires viper to the environment and sets defaults. A .env file in
// the working directory is loaded first, matching how the bot has always
// been configured in development.
func Init() {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	viper.SetDefault("model_name", DefaultModelName)
	viper.SetDefault("max_tokens", DefaultMaxTokens)
	viper.SetDefault("temperature", DefaultTemperature)
	viper.SetDefault("voice_rate", DefaultVoiceRate)
	viper.SetDefault("voice_volume", DefaultVoiceVolume)
	viper.SetDefault("call_timeout", DefaultCallTimeout)
}

// Load reads the current configuration and validates required credentials.
func Load() (*Config, error) {
	cfg := &Config{
		GroqAPIKey:       viper.GetString("groq_api_key"),
		DeepgramAPIKey:   viper.GetString("deepgram_api_key"),
		ElevenLabsAPIKey: viper.GetString("elevenlabs_api_key"),
		GeminiAPIKey:     viper.GetString("gemini_api_key"),
		ModelName:        viper.GetString("model_name"),
		MaxTokens:        viper.GetInt("max_tokens"),
		Temperature:      float32(viper.GetFloat64("temperature")),
		VoiceID:          viper.GetString("voice_id"),
		VoiceRate:        viper.GetInt("voice_rate"),
		VoiceVolume:      viper.GetFloat64("voice_volume"),
		CallTimeout:      viper.GetDuration("call_timeout"),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf(
			"GROQ_API_KEY not set (try `vox setup` or a .env file): %w",
			ErrMissingCredential,
		)
	}

	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}

	return cfg, nil
}
