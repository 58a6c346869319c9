package main

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// RunSetup walks through the API keys interactively and writes them to
// config.yaml in the working directory.
func RunSetup() {
	log.Info("Starting Vox setup...")

	groqKey := viper.GetString("groq_api_key")
	deepgramKey := viper.GetString("deepgram_api_key")
	elevenlabsKey := viper.GetString("elevenlabs_api_key")
	geminiKey := viper.GetString("gemini_api_key")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Groq API key (required)").
				Description("Used for chat replies, and for speech in and out unless other keys are set.").
				Value(&groqKey),
			huh.NewInput().
				Title("Deepgram API key (optional)").
				Description("Use Deepgram for speech recognition instead of Whisper.").
				Value(&deepgramKey),
			huh.NewInput().
				Title("ElevenLabs API key (optional)").
				Description("Use ElevenLabs for speech synthesis instead of PlayAI.").
				Value(&elevenlabsKey),
			huh.NewInput().
				Title("Gemini API key (optional)").
				Description("Use Gemini for chat replies instead of Groq.").
				Value(&geminiKey),
		),
	)

	if err := form.Run(); err != nil {
		log.Fatal("Setup cancelled", "error", err)
	}

	if groqKey == "" {
		log.Fatal("A Groq API key is required to continue")
	}

	viper.Set("groq_api_key", groqKey)
	viper.Set("deepgram_api_key", deepgramKey)
	viper.Set("elevenlabs_api_key", elevenlabsKey)
	viper.Set("gemini_api_key", geminiKey)

	if err := viper.WriteConfigAs("config.yaml"); err != nil {
		log.Fatal("Failed to write config.yaml", "error", err)
	}

	log.Info("Setup complete", "config", "config.yaml")
}
