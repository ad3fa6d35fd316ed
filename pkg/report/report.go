package report

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/nmap"
	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
)

// Report summarises what a host looks like to the scanning toolkit.
type Report struct {
	Host       string    `json:"host"`
	Candidate  string    `json:"candidate,omitempty"`
	Path       string    `json:"path,omitempty"`
	Version    string    `json:"version,omitempty"`
	Installed  bool      `json:"installed"`
	Privileged bool      `json:"privileged"`
	Error      string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Resolver is the part of *nmap.Resolver a probe needs.
type Resolver interface {
	Path(ctx context.Context, candidate string) (string, error)
	VersionOf(ctx context.Context, path string) (string, error)
}

type Prober struct {
	Resolver  Resolver
	Privilege privilege.Checker
	Hostname  func() (string, error)
	Now       func() time.Time
}

func NewProber(resolver Resolver, checker privilege.Checker) Prober {
	return Prober{
		Resolver:  resolver,
		Privilege: checker,
		Hostname:  os.Hostname,
		Now:       time.Now,
	}
}

// Probe never fails: problems end up in Report.Error.
func (p Prober) Probe(ctx context.Context, candidate string) Report {
	logger := logging.Logger()

	r := Report{
		Host:       p.hostname(),
		Candidate:  candidate,
		Privileged: p.Privilege.IsPrivileged(),
		CheckedAt:  p.now().UTC(),
	}

	path, err := p.Resolver.Path(ctx, candidate)
	if err != nil {
		if !errors.Is(err, nmap.ErrNotInstalled) {
			logger.Warn().Msgf("error resolving nmap on %s: %v", r.Host, err)
		}
		r.Error = err.Error()
		return r
	}
	r.Path = path
	r.Installed = true

	version, err := p.Resolver.VersionOf(ctx, path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Version = version
	return r
}

func (p Prober) hostname() string {
	if p.Hostname == nil {
		return "unknown"
	}
	host, err := p.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}

func (p Prober) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
