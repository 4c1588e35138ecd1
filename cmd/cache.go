package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/places-cli/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cached responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := cache.Open(ctx, cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.Purge(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("purged cached responses", zap.Int("deleted", n), zap.String("path", cfg.Cache.Path))
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired responses\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
