package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/linanwx/chatwidget/frontend"
	"github.com/linanwx/chatwidget/logger"
	"github.com/spf13/cobra"
)

var plainFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the chat widget",
	Long: `Start the chat widget. A full-screen interface is used when stdin is a
terminal; otherwise each input line is submitted as a message.

Inside the widget:
  Enter     send the message
  /stats    show reply cache statistics
  /quit     leave (also /exit or Ctrl+C)

Examples:
  chatwidget run
  chatwidget run --endpoint http://localhost:8000/chat/
  echo "Olá" | chatwidget run`,
	RunE: runWidget,
}

func init() {
	addWidgetFlags(runCmd)
	runCmd.Flags().BoolVar(&plainFlag, "plain", false, "Use the line-based interface even on a terminal")
	rootCmd.AddCommand(runCmd)
}

func runWidget(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fe := frontend.New(frontend.Options{
		Widget:      s.widget,
		Replier:     s.replier,
		BotName:     cfg.Widget.BotName,
		UserName:    cfg.Widget.UserName,
		Placeholder: cfg.Widget.Placeholder,
		Markdown:    cfg.Widget.MarkdownEnabled(),
		Stats:       s.stats(),
		ForcePlain:  plainFlag,
	})
	err = fe.Run(ctx)
	logger.Info("chat widget stopped", "messages", s.widget.Conversation().Len())
	return err
}
