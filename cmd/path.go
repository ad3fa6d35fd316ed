package cmd

import (
	"fmt"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/spf13/cobra"
)

var candidatePath string

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where nmap is installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate := config.Get().NmapPath
		if cmd.Flags().Changed("path") {
			candidate = candidatePath
		}

		path, err := newResolver(cmd).Path(cmd.Context(), candidate)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	pathCmd.Flags().StringVar(&candidatePath, "path", "", "Candidate nmap path to validate before searching PATH")
}
