package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linanwx/chatwidget/config"
)

var forceOnboard bool

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the chatwidget configuration",
	Long:  `Create the chatwidget configuration directory and write config.yaml interactively.`,
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().BoolVar(&forceOnboard, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil && !forceOnboard {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or run 'chatwidget onboard --force'.")
		return nil
	}

	cfg := config.DefaultConfig()
	var (
		endpoint    = cfg.Widget.Endpoint
		greeting    = cfg.Widget.Greeting
		timeoutText = strconv.Itoa(cfg.Widget.TimeoutSeconds)
		enableCache bool
	)

	// Step 1: service
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Chat service URL").
				Description("Every message is POSTed here as {\"texto\": ...}.").
				Validate(validateEndpoint).
				Value(&endpoint),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Description("0 waits as long as the connection allows.").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a whole number of seconds")
					}
					return nil
				}).
				Value(&timeoutText),
		),
	).Run()
	if err != nil {
		return err
	}

	// Step 2: greeting
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Greeting").
				Description("First bot message shown when the widget opens.").
				Value(&greeting),
		),
	).Run()
	if err != nil {
		return err
	}

	// Step 3: optional reply cache
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cache replies locally?").
				Description("Repeated questions are answered from a local SQLite file. You can change this later in config.yaml.").
				Value(&enableCache),
		),
	).Run()
	if err != nil {
		return err
	}

	// --- apply config ---

	cfg.Widget.Endpoint = strings.TrimSpace(endpoint)
	if g := strings.TrimSpace(greeting); g != "" {
		cfg.Widget.Greeting = g
	}
	cfg.Widget.TimeoutSeconds, _ = strconv.Atoi(strings.TrimSpace(timeoutText))
	cfg.Cache.Enabled = enableCache

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("chatwidget configured!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Endpoint:", cfg.Widget.Endpoint)
	fmt.Println("  Cache:", enableCache)
	fmt.Println()
	fmt.Println("Run 'chatwidget' to start.")
	return nil
}

func validateEndpoint(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}
