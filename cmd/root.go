package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootConfigPath string

// NewRootCmd builds the canvas command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "canvas",
		Short: "Chat-driven graphing calculator",
		Long: `Canvas is a conversational front-end for a graphing surface: describe what
you want to see and the assistant plots it, adjusts the viewport, and
explains the math alongside.

Run the backend with 'canvas serve', then talk to it with 'canvas chat'.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to canvas.yml (defaults to ./canvas.yml, then the user config dir)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewChatCmd())
	rootCmd.AddCommand(NewUploadCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// configureLogging applies the configured level to the shared logger.
func configureLogging(cfg *CanvasConfig) *logrus.Logger {
	logger := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
