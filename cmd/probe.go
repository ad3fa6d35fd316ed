package cmd

import (
	"fmt"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/IgorEulalio/nmap-preflight/pkg/kubernetes"
	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
	"github.com/IgorEulalio/nmap-preflight/pkg/report"
	"github.com/spf13/cobra"
)

var (
	probeSave    bool
	probePublish bool
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Build a report of this host's nmap installation and privileges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger()
		cfg := config.Get()

		rep := report.NewProber(newResolver(cmd), privilege.System).Probe(cmd.Context(), cfg.NmapPath)

		if probeSave {
			store, err := newStore(cmd, cfg)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), rep); err != nil {
				return err
			}
		}

		if probePublish || cfg.Kubernetes.Enabled {
			if err := kubernetes.Init(cfg.Kubernetes); err != nil {
				return fmt.Errorf("error creating kubernetes client: %w", err)
			}
			publisher := report.NewPublisher(kubernetes.GetClient().Clientset, cfg.Kubernetes.Namespace, cfg.Kubernetes.ConfigMap)
			if err := publisher.Publish(cmd.Context(), rep); err != nil {
				return err
			}
			logger.Info().Msgf("report for %s published to %s/%s", rep.Host, cfg.Kubernetes.Namespace, cfg.Kubernetes.ConfigMap)
		}

		return printJSON(cmd.OutOrStdout(), rep)
	},
}

func init() {
	probeCmd.Flags().BoolVar(&probeSave, "save", false, "Store the report in the configured cache")
	probeCmd.Flags().BoolVar(&probePublish, "publish", false, "Publish the report to a Kubernetes ConfigMap")
}
