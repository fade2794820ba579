package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/internal/health"
)

var (
	healthFormat string
	healthProbe  bool
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Report runtime, config, cache and endpoint status",
	GroupID: "maintenance",
	Long: `Print a diagnostic snapshot: Go runtime, config file, reply cache
file and the configured endpoint. With --probe the endpoint host is dialed
(no request is sent to the service).`,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthFormat, "format", "yaml", "Output format: yaml or json")
	healthCmd.Flags().BoolVar(&healthProbe, "probe", false, "Dial the endpoint host")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	configPath, _ := config.ConfigPath()
	opts := health.Options{
		ConfigPath: configPath,
		Endpoint:   cfg.Widget.Endpoint,
		Probe:      healthProbe,
		Timeout:    cfg.Widget.Timeout(),
	}
	if cfg.Cache.Enabled {
		opts.CachePath, _ = config.ResolvePath(cfg.Cache.Path)
	}

	snapshot := health.Collect(cmd.Context(), opts)

	var data []byte
	if strings.EqualFold(healthFormat, "json") {
		data, err = json.MarshalIndent(snapshot, "", "  ")
	} else {
		data, err = yaml.Marshal(snapshot)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize health snapshot: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	return nil
}
