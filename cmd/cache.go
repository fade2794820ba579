package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linanwx/chatwidget/cache"
	"github.com/linanwx/chatwidget/config"
	"github.com/linanwx/chatwidget/frontend"
	"github.com/spf13/cobra"
)

var (
	statsTopFlag   int
	cleanOlderThan time.Duration
)

var cacheCmd = &cobra.Command{
	Use:     "cache",
	Short:   "Inspect or clean the reply cache",
	GroupID: "maintenance",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached question counts and the most used questions",
	RunE:  runCacheStats,
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete expired cache entries",
	Long: `Delete cache entries older than the configured expiration
(cache.expirationDays), or older than --older-than when given.`,
	RunE: runCacheClean,
}

func init() {
	cacheStatsCmd.Flags().IntVar(&statsTopFlag, "top", 5, "Number of top questions to list")
	cacheCleanCmd.Flags().DurationVar(&cleanOlderThan, "older-than", 0, "Age cutoff, e.g. 72h")
	cacheCmd.AddCommand(cacheStatsCmd, cacheCleanCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openStore() (*config.Config, *cache.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	path, err := config.ResolvePath(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(context.Background(), statsTopFlag)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), frontend.FormatStats(st))
	return nil
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	maxAge := cfg.Cache.Expiration()
	if cleanOlderThan > 0 {
		maxAge = cleanOlderThan
	}
	if maxAge <= 0 {
		return errors.New("expiration must be positive")
	}
	n, err := store.Clean(context.Background(), maxAge)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries older than %s\n", n, maxAge)
	return nil
}
