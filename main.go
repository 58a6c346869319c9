package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vox.town/config"
	"vox.town/session"
	"vox.town/stt"
	"vox.town/tui"
	"vox.town/web"
)

func init() {
	cobra.OnInitialize(initConfig)

	askCmd.Flags().Bool("speak", false, "Also synthesize the reply to a wav file")
	sayCmd.Flags().StringP("output", "o", "reply.wav", "Output audio file")

	rootCmd.AddCommand(web.ServeCmd)
	rootCmd.AddCommand(tui.ChatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(setupCmd)

	rootCmd.PersistentFlags().String("groq-api-key", "", "Groq API key")
	rootCmd.PersistentFlags().String("deepgram-api-key", "", "Deepgram API key")
	rootCmd.PersistentFlags().
		String("elevenlabs-api-key", "", "ElevenLabs API key")
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key")
	rootCmd.PersistentFlags().String("model", "", "Chat model name")
	rootCmd.PersistentFlags().String("voice", "", "Voice id for synthesis")

	viper.BindPFlag(
		"groq_api_key",
		rootCmd.PersistentFlags().Lookup("groq-api-key"),
	)
	viper.BindPFlag(
		"deepgram_api_key",
		rootCmd.PersistentFlags().Lookup("deepgram-api-key"),
	)
	viper.BindPFlag(
		"elevenlabs_api_key",
		rootCmd.PersistentFlags().Lookup("elevenlabs-api-key"),
	)
	viper.BindPFlag(
		"gemini_api_key",
		rootCmd.PersistentFlags().Lookup("gemini-api-key"),
	)
	viper.BindPFlag("model_name", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("voice_id", rootCmd.PersistentFlags().Lookup("voice"))
}

func initConfig() {
	config.Init()
}

var rootCmd = &cobra.Command{
	Use:   "vox",
	Short: "Vox is a conversational voice assistant",
	Long:  `Vox captures spoken or typed questions, asks a hosted language model for a reply, and speaks the answer back.`,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and print the reply",
	Args:  cobra.ExactArgs(1),
	Run:   runAsk,
}

var sayCmd = &cobra.Command{
	Use:   "say <text>",
	Short: "Synthesize text to an audio file",
	Args:  cobra.ExactArgs(1),
	Run:   runSay,
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe a wav or raw PCM file",
	Long:  `Transcribe an audio file (16kHz mono 16-bit, wav or raw PCM) and print the recognized text.`,
	Args:  cobra.ExactArgs(1),
	Run:   runTranscribe,
}

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List available synthesis voices",
	Run:   runVoices,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively configure API keys",
	Run: func(cmd *cobra.Command, args []string) {
		RunSetup()
	},
}

func runAsk(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration", "error", err)
	}

	speak, _ := cmd.Flags().GetBool("speak")

	ctx := context.Background()
	pipeline, err := session.BuildPipeline(ctx, cfg, log.Default())
	if err != nil {
		log.Fatal("build pipeline", "error", err)
	}
	if !speak {
		pipeline.Synthesizer = nil
	}

	s := session.New()
	result, err := pipeline.SubmitText(ctx, s, args[0])
	if err != nil {
		log.Fatal("submit", "error", err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		log.Fatal("create renderer", "error", err)
	}

	rendered, err := renderer.Render(result.AssistantTurn.Content)
	if err != nil {
		fmt.Println(result.AssistantTurn.Content)
	} else {
		fmt.Print(rendered)
	}

	if result.Warning != "" {
		log.Warn(result.Warning)
	}
	if audio := result.AssistantTurn.Audio; audio != nil {
		log.Info("reply audio", "path", audio.Path, "bytes", audio.Size)
	}
}

func runSay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration", "error", err)
	}

	synthesizer, err := session.BuildSynthesizer(
		context.Background(), cfg, log.Default(),
	)
	if err != nil {
		log.Fatal("build synthesizer", "error", err)
	}

	artifact, err := synthesizer.Synthesize(context.Background(), args[0], "")
	if err != nil {
		log.Fatal("synthesize", "error", err)
	}
	defer artifact.Release()

	output, _ := cmd.Flags().GetString("output")
	if err := copyFile(artifact.Path, output); err != nil {
		log.Fatal("write output", "error", err)
	}

	log.Info("spoke", "path", output, "bytes", artifact.Size)
}

func runTranscribe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration", "error", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal("read audio file", "error", err)
	}
	pcm, err := stt.UnwrapWAV(data)
	if err != nil {
		log.Fatal("parse audio file", "error", err)
	}

	var transcriber stt.Transcriber
	if cfg.DeepgramAPIKey != "" {
		transcriber = stt.NewDeepgramTranscriber(cfg.DeepgramAPIKey, log.Default())
	} else {
		transcriber = stt.NewWhisperTranscriber(cfg.GroqAPIKey, log.Default())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CallTimeout)
	defer cancel()

	text, err := transcriber.Transcribe(ctx, pcm)
	if err != nil {
		log.Fatal("transcribe", "error", err)
	}
	fmt.Println(text)
}

func runVoices(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration", "error", err)
	}

	synthesizer, err := session.BuildSynthesizer(
		context.Background(), cfg, log.Default(),
	)
	if err != nil {
		log.Fatal("build synthesizer", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CallTimeout)
	defer cancel()

	voices, err := synthesizer.Voices(ctx)
	if err != nil {
		log.Fatal("list voices", "error", err)
	}
	if len(voices) == 0 {
		fmt.Println("No voices available.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	for _, v := range voices {
		table.Append([]string{v.ID, v.Name})
	}
	table.Render()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
