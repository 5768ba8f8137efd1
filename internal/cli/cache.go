package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kumasuke/textractor/internal/cache"
)

var pruneOlderThan time.Duration

// NewCacheCmd creates the cache command and its subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached responses older than a cutoff",
		Args:  cobra.NoArgs,
		RunE:  runCachePrune,
	}
	prune.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "age beyond which cached responses are removed")

	cmd.AddCommand(prune)
	return cmd
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context(), pruneOlderThan)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d cached response(s)\n", removed)
	return nil
}
