package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axiomcanvas/canvas-flow/cmd/chat_tui"
	"github.com/axiomcanvas/canvas-flow/pkg/chat"
	"github.com/axiomcanvas/canvas-flow/pkg/state"
)

var chatBackendURL string

func NewChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat with the graphing assistant",
		Long: `Opens a terminal chat session against a running backend. The left pane
holds the conversation, the right pane mirrors the graph surface the
assistant is drawing on.

Example:
  canvas chat --backend http://localhost:5000`,
		RunE: runChat,
	}
	chatCmd.Flags().StringVarP(&chatBackendURL, "backend", "b", "", "Backend base URL (overrides config)")
	return chatCmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(rootConfigPath)
	if err != nil {
		return err
	}
	logger := configureLogging(cfg)
	// The TUI owns the terminal; keep log noise out of it.
	logger.SetLevel(logrus.ErrorLevel)

	backend := cfg.Client.BackendURL
	if chatBackendURL != "" {
		backend = chatBackendURL
	}

	session := chat.NewSession()
	if err := state.SetActiveSession(session.ID); err != nil {
		// Uploads from a second shell just won't share the session.
		logger.WithError(err).Warn("could not persist active session")
	}

	client := chat.NewClient(backend, chat.WithLogger(logger))
	return chat_tui.Run(session, client, logger)
}
