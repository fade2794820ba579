package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linanwx/chatwidget/termmd"
	"github.com/spf13/cobra"
)

var messageFlag string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send one message and print the reply",
	Long: `Submit a single message through the widget and print the bot's answer.
Exits non-zero when the service cannot be reached.

Example:
  chatwidget ask -m "Qual a idade mínima?"`,
	RunE: runAsk,
}

func init() {
	addWidgetFlags(askCmd)
	askCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Message text (required)")
	_ = askCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(messageFlag) == "" {
		return errors.New("--message must not be blank")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	s.widget.SetDraft(messageFlag)
	ex, ok := s.widget.Submit()
	if !ok {
		// Rejected locally (too long); the widget already explains why.
		fmt.Fprintln(cmd.OutOrStdout(), s.widget.Conversation().Last().Text)
		return errors.New("message rejected")
	}
	res := ex.Run(context.Background(), s.replier)
	reply := s.widget.Resolve(res)

	text := reply.Text
	if cfg.Widget.MarkdownEnabled() {
		text = termmd.Render(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	if res.Err != nil {
		return res.Err
	}
	return nil
}
