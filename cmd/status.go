package cmd

import (
	"errors"
	"os"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/spf13/cobra"
)

var statusHost string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last stored report for a host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if cfg.CacheConfig.RedisConfig.Address == "" {
			return errors.New("status needs a shared cache, set cache.redis.address")
		}

		host := statusHost
		if host == "" {
			var err error
			if host, err = os.Hostname(); err != nil {
				return err
			}
		}

		store, err := newStore(cmd, cfg)
		if err != nil {
			return err
		}
		rep, err := store.Load(cmd.Context(), host)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rep)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusHost, "host", "", "Host to look up (defaults to this host)")
}
