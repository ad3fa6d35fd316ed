package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/IgorEulalio/nmap-preflight/pkg/gate"
	"github.com/IgorEulalio/nmap-preflight/pkg/nmap"
)

// VersionLocator is satisfied by *nmap.Resolver.
type VersionLocator interface {
	gate.Locator
	Version(ctx context.Context) (string, error)
}

type VersionResponse struct {
	Version string `json:"version"`
}

type VersionHandler struct {
	version gate.Gated[string]
}

func NewVersionHandler(locator VersionLocator) *VersionHandler {
	return &VersionHandler{version: gate.RequireInstalled[string](locator, locator.Version)}
}

// Version answers 503 when nmap is missing: with the gate record when the
// resolved path is gone, with the error text when the lookup found nothing.
func (h VersionHandler) Version(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Please send with GET http method", http.StatusMethodNotAllowed)
		return
	}

	v, refused, err := h.version(r.Context())
	if refused != nil {
		writeJSON(w, http.StatusServiceUnavailable, refused)
		return
	}
	if errors.Is(err, nmap.ErrNotInstalled) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, VersionResponse{Version: v})
}
