package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/report"
)

type Prober interface {
	Probe(ctx context.Context, candidate string) report.Report
}

type ProbeHandler struct {
	prober    Prober
	store     *report.Store
	candidate func() string
}

// NewProbeHandler wires the probe endpoints. candidate is consulted on every
// request so a reloaded config is picked up.
func NewProbeHandler(prober Prober, store *report.Store, candidate func() string) (*ProbeHandler, error) {
	if prober == nil || store == nil {
		return nil, errors.New("probe handler needs a prober and a store")
	}
	if candidate == nil {
		candidate = func() string { return "" }
	}
	return &ProbeHandler{prober: prober, store: store, candidate: candidate}, nil
}

func (h ProbeHandler) Probe(w http.ResponseWriter, r *http.Request) {
	logger := logging.Logger()

	if r.Method != http.MethodGet {
		http.Error(w, "Please send with GET http method", http.StatusMethodNotAllowed)
		return
	}

	rep := h.prober.Probe(r.Context(), h.candidate())
	if err := h.store.Save(r.Context(), rep); err != nil {
		logger.Error().Msgf("error saving report: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (h ProbeHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Please send with GET http method", http.StatusMethodNotAllowed)
		return
	}

	host := r.URL.Query().Get("host")
	if host == "" {
		http.Error(w, "host query parameter is required", http.StatusBadRequest)
		return
	}

	rep, err := h.store.Load(r.Context(), host)
	if errors.Is(err, report.ErrNoReport) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
