package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
	"github.com/axiomcanvas/canvas-flow/pkg/state"
)

var (
	uploadBackendURL string
	uploadSessionID  string
)

func NewUploadCmd() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF into the active chat session",
		Long: `Uploads a PDF over the side-channel so the assistant can answer questions
about its content. By default the upload targets the session of the most
recent 'canvas chat'; pass --session to target another one.

Only PDF files are accepted; anything else is rejected before any network
call is made.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}
	uploadCmd.Flags().StringVarP(&uploadBackendURL, "backend", "b", "", "Backend base URL (overrides config)")
	uploadCmd.Flags().StringVarP(&uploadSessionID, "session", "s", "", "Session ID to attach the document to")
	return uploadCmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(rootConfigPath)
	if err != nil {
		return err
	}
	configureLogging(cfg)

	backend := cfg.Client.BackendURL
	if uploadBackendURL != "" {
		backend = uploadBackendURL
	}

	sessionID := uploadSessionID
	if sessionID == "" {
		sessionID, err = state.ActiveSession()
		if err != nil {
			return err
		}
		if sessionID == "" {
			return fmt.Errorf("no active chat session; run 'canvas chat' first or pass --session")
		}
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	client := chat.NewClient(backend)
	resp, err := client.UploadPDF(context.Background(), path, data, sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrNotPDF) {
			color.Red("✗ %s is not a valid PDF file", path)
			return err
		}
		color.Red("✗ Upload failed: %v", err)
		return err
	}

	color.Green("✓ %s uploaded", path)
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	return nil
}
