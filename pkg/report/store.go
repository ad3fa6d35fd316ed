package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IgorEulalio/nmap-preflight/pkg/cache"
	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
)

const keyPrefix = "nmap-preflight:"

var ErrNoReport = errors.New("no probe report stored")

// Store keeps the latest report per host in a cache.
type Store struct {
	Cache cache.Cache
	TTL   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{Cache: c, TTL: ttl}
}

func (s *Store) Save(ctx context.Context, r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshaling report for %s: %w", r.Host, err)
	}
	if err := s.Cache.Set(ctx, key(r.Host), data, s.TTL); err != nil {
		return fmt.Errorf("failed to store report for %s: %w", r.Host, err)
	}
	l := logging.Logger()
	l.Debug().Msgf("report for %s stored with ttl %s", r.Host, s.TTL)
	return nil
}

func (s *Store) Load(ctx context.Context, host string) (Report, error) {
	data, ok, err := s.Cache.Get(ctx, key(host))
	if err != nil {
		return Report{}, fmt.Errorf("failed to load report for %s: %w", host, err)
	}
	if !ok {
		return Report{}, fmt.Errorf("%s: %w", host, ErrNoReport)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("error unmarshaling report for %s: %w", host, err)
	}
	return r, nil
}

func key(host string) string {
	return keyPrefix + host
}
