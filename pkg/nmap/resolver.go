package nmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/platform"
	"github.com/spf13/afero"
)

const (
	DefaultBinary  = "nmap"
	DefaultTimeout = 15 * time.Second
	// WaitDelay bounds Wait once the child is gone but its pipes are still
	// held open by a grandchild.
	WaitDelay = 2 * time.Second
)

// Resolver locates the nmap binary and talks to it. Every call spawns its
// own child process; nothing is cached between calls.
type Resolver struct {
	Binary      string
	Platform    platform.Platform
	Timeout     time.Duration
	Runner      Runner
	Fs          afero.Fs
	Diagnostics io.Writer
}

func NewResolver(runner Runner, fs afero.Fs) *Resolver {
	return &Resolver{
		Binary:      DefaultBinary,
		Platform:    platform.Current(),
		Timeout:     DefaultTimeout,
		Runner:      runner,
		Fs:          fs,
		Diagnostics: os.Stderr,
	}
}

func NewResolverFromConfig(cfg config.Config) *Resolver {
	r := NewResolver(DefaultCommandRunner{}, afero.NewOsFs())
	if cfg.Binary != "" {
		r.Binary = cfg.Binary
	}
	if cfg.TimeoutSeconds > 0 {
		r.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return r
}

// Path returns candidate unchanged when it exists, otherwise asks the
// platform lookup command where the binary lives.
func (r *Resolver) Path(ctx context.Context, candidate string) (string, error) {
	logger := logging.Logger()

	if candidate != "" && r.Exists(candidate) {
		return candidate, nil
	}

	lookup := r.Platform.LookupCommand()
	logger.Debug().Msgf("Running command: %s %s", lookup, r.binary())

	cmd := r.runner().Command(lookup, r.binary())
	stdout, stderr, err := r.communicate(ctx, cmd)
	if err != nil {
		_ = r.runner().Kill(cmd)
		return "", err
	}
	if len(stderr) > 0 {
		r.printDiagnostic(string(stderr))
	}

	path := r.Platform.Normalize(string(stdout))
	if path == "" {
		return "", &NotInstalledError{Path: candidate}
	}
	logger.Debug().Msgf("%s resolved to %s", r.binary(), path)
	return path, nil
}

// Exists reports whether path is present on the filesystem.
func (r *Resolver) Exists(path string) bool {
	ok, err := afero.Exists(r.fs(), path)
	return err == nil && ok
}

// communicate runs cmd to completion, bounded by the resolver timeout. A
// non-zero exit status is not a failure: the lookup commands use it to say
// "not found" and the output decides.
func (r *Resolver) communicate(ctx context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = WaitDelay
	}

	name := strings.Join(cmd.Args, " ")
	if name == "" {
		name = cmd.Path
	}

	if err := r.runner().Start(cmd); err != nil {
		return nil, nil, fmt.Errorf("error starting %s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- r.runner().Wait(cmd)
	}()

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return nil, nil, fmt.Errorf("error communicating with %s: %w", name, err)
		}
		return stdout.Bytes(), stderr.Bytes(), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%s after %s: %w", name, r.timeout(), ErrTimeout)
		}
		return nil, nil, fmt.Errorf("%s: %w", name, ctx.Err())
	}
}

func (r *Resolver) printDiagnostic(msg string) {
	l := logging.Logger()
	l.Warn().Msgf("%s", strings.TrimSpace(msg))
	fmt.Fprintln(r.diagnostics(), strings.TrimSpace(msg))
}

func (r *Resolver) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

func (r *Resolver) fs() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}

func (r *Resolver) diagnostics() io.Writer {
	if r.Diagnostics == nil {
		return os.Stderr
	}
	return r.Diagnostics
}

func (r *Resolver) runner() Runner {
	if r.Runner == nil {
		return DefaultCommandRunner{}
	}
	return r.Runner
}
