package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/cache"
	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/nmap"
	"github.com/IgorEulalio/nmap-preflight/pkg/report"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "nmap-preflight",
	Short: "Locate nmap and check that this host is ready to scan",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		level := config.Get().LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logging.InitLogger(level)
		l := logging.Logger()
		l.Debug().Msg("Config successfully loaded.")
		return nil
	},
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(pathCmd, versionCmd, checkCmd, probeCmd, statusCmd, serveCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func newResolver(cmd *cobra.Command) *nmap.Resolver {
	r := nmap.NewResolverFromConfig(config.Get())
	r.Diagnostics = cmd.ErrOrStderr()
	return r
}

func newStore(cmd *cobra.Command, cfg config.Config) (*report.Store, error) {
	c, err := cache.NewCacheFromConfig(cmd.Context(), cfg.CacheConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating cache: %w", err)
	}
	return report.NewStore(c, time.Duration(cfg.CacheConfig.TTLSeconds)*time.Second), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
