package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/axiomcanvas/canvas-flow/pkg/server"
)

var (
	serveAddr      string
	serveModel     string
	serveStaticDir string
)

func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat backend",
		Long: `Runs the HTTP backend that the chat clients talk to. The backend needs a
Gemini API key in the GEMINI_API_KEY environment variable.

Example:
  GEMINI_API_KEY=... canvas serve --addr :5000`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVarP(&serveModel, "model", "m", "", "Reasoning model name (overrides config)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "Directory with the web front-end to serve at / (overrides config)")
	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(rootConfigPath)
	if err != nil {
		return err
	}
	logger := configureLogging(cfg)

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveModel != "" {
		cfg.Server.Model = serveModel
	}
	if serveStaticDir != "" {
		cfg.Server.StaticDir = serveStaticDir
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	provider, err := server.NewGeminiProvider(server.GeminiConfig{
		APIKey:          apiKey,
		Model:           cfg.Server.Model,
		Timeout:         cfg.serverTimeout(),
		MaxOutputTokens: cfg.Server.MaxOutputTokens,
	})
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		Addr:      cfg.Server.Addr,
		StaticDir: cfg.Server.StaticDir,
	}, provider, server.WithServerLogger(logger))

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		green := color.New(color.FgGreen, color.Bold)
		green.Printf("canvas backend listening on %s", cfg.Server.Addr)
		fmt.Printf("  (model: %s)\n", provider.Model())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
