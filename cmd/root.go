// Package cmd implements the chatwidget command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/logger"
	"github.com/spf13/cobra"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   "chatwidget",
	Short: "Terminal chat widget for a remote chat-reply service",
	Long: `chatwidget shows a conversation and an input line, posts what you type
to a chat-reply service and appends the answer.

Run without a subcommand to start the widget.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runWidget,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Configuration directory (default ~/.chatwidget)")
	rootCmd.AddGroup(&cobra.Group{ID: "maintenance", Title: "Maintenance Commands:"})
	addWidgetFlags(rootCmd)
	rootCmd.Flags().BoolVar(&plainFlag, "plain", false, "Use the line-based interface even on a terminal")
}

// setup applies --config-dir and starts the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	config.SetConfigDir(configDirFlag)

	cfg, err := config.Load()
	if err != nil {
		// Keep going with defaults so `onboard` can repair a broken file.
		fmt.Fprintln(os.Stderr, "config error:", err)
		cfg = config.DefaultConfig()
	}
	dir, _ := config.ConfigDir()
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
