package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vox.town/config"
	"vox.town/session"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser chat interface",
	Long:  `This command starts the HTTP server that renders the conversation and accepts voice or text input.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		if err := Serve(port); err != nil {
			log.Fatal("Failed to start server", "error", err)
		}
	},
}

func init() {
	ServeCmd.Flags().IntP("port", "p", 8080, "Port to run the HTTP server on")
}

func Serve(port int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.Default()

	pipeline, err := session.BuildPipeline(
		context.Background(), cfg, logger,
	)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	handler := NewHandler(pipeline, logger.WithPrefix("web"))

	log.Info("http", "url", fmt.Sprintf("http://localhost:%d", port))
	return http.ListenAndServe(fmt.Sprintf(":%d", port), handler.Router())
}
