package cmd

import (
	"context"
	"errors"

	"github.com/IgorEulalio/nmap-preflight/pkg/gate"
	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
	"github.com/spf13/cobra"
)

var errPreflightFailed = errors.New("preflight check failed")

type checkOutput struct {
	Privilege *gate.Result `json:"privilege,omitempty"`
	Install   *gate.Result `json:"install,omitempty"`
	Version   string       `json:"version,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for root/administrator privileges and an nmap installation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := newResolver(cmd)
		out, err := runCheck(cmd.Context(), privilege.System, resolver)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
		if out.Privilege != nil || out.Install != nil {
			return errPreflightFailed
		}
		return nil
	},
}

func runCheck(ctx context.Context, checker privilege.Checker, locator versionLocator) (checkOutput, error) {
	var out checkOutput

	privileged := gate.RequireRoot[bool](checker, func(context.Context) (bool, error) { return true, nil })
	_, out.Privilege, _ = privileged(ctx)

	version := gate.RequireInstalled[string](locator, locator.Version)
	v, refused, err := version(ctx)
	if err != nil {
		return out, err
	}
	out.Install = refused
	out.Version = v
	return out, nil
}

type versionLocator interface {
	gate.Locator
	Version(ctx context.Context) (string, error)
}
