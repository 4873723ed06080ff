package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewCacheCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the search response cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache directory and entry count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := ra.cacheStore()
				if err != nil {
					return err
				}
				count, err := store.Count()
				if err != nil {
					return err
				}
				cmd.Printf("Directory: %s\n", store.Directory())
				cmd.Printf("Entries:   %s\n", humanize.Comma(int64(count)))
				cmd.Printf("TTL:       %s\n", ra.settings.CacheTTL())
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Remove expired entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := ra.cacheStore()
				if err != nil {
					return err
				}
				removed, err := store.CleanupExpired()
				if err != nil {
					return err
				}
				ra.logger.Debug("pruned cache", "dir", store.Directory(), "removed", removed)
				cmd.Printf("Removed %s expired %s\n", humanize.Comma(int64(removed)), plural(removed, "entry", "entries"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := ra.cacheStore()
				if err != nil {
					return err
				}
				if err := store.Clear(); err != nil {
					return fmt.Errorf("clear %s: %w", store.Directory(), err)
				}
				cmd.Printf("Cleared %s\n", store.Directory())
				return nil
			},
		},
	)

	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
