package nmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
)

// Version returns the trimmed banner printed by `nmap --version`, always
// locating the binary from scratch.
func (r *Resolver) Version(ctx context.Context) (string, error) {
	path, err := r.Path(ctx, "")
	if err != nil {
		return "", err
	}
	return r.VersionOf(ctx, path)
}

// VersionOf runs `<path> --version`. When the child cannot be talked to it
// is killed and ErrVersionUnavailable is returned.
func (r *Resolver) VersionOf(ctx context.Context, path string) (string, error) {
	logger := logging.Logger()

	cmd := r.runner().Command(path, "--version")
	logger.Debug().Msgf("Running command: %s --version", path)

	stdout, stderr, err := r.communicate(ctx, cmd)
	if err != nil {
		fmt.Fprintln(r.diagnostics(), err)
		logger.Error().Msgf("error querying nmap version: %v", err)
		if killErr := r.runner().Kill(cmd); killErr != nil {
			logger.Warn().Msgf("error killing %s: %v", path, killErr)
		}
		return "", fmt.Errorf("%w: %w", ErrVersionUnavailable, err)
	}
	if len(stderr) > 0 {
		r.printDiagnostic(string(stderr))
	}

	return strings.TrimSpace(string(stdout)), nil
}
