package config

import (
	"bytes"
	"testing"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadKeepsPreviousConfigOnDecodeError(t *testing.T) {
	prevLogger := logging.Logger()
	prevCfg := Get()
	t.Cleanup(func() {
		logging.SetLogger(prevLogger)
		set(prevCfg)
	})

	var logs bytes.Buffer
	logging.SetLogger(zerolog.New(&logs))
	set(Config{Port: 9090, LogLevel: "debug"})

	v, err := New("missing", t.TempDir())
	require.NoError(t, err)
	v.Set("port", "not-a-port")

	reload(v, "/etc/nmap-preflight/config.yaml")

	assert.Equal(t, 9090, Get().Port)
	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "config file /etc/nmap-preflight/config.yaml changed but could not be decoded")
}

func TestReloadAppliesDecodedConfig(t *testing.T) {
	prevCfg := Get()
	t.Cleanup(func() { set(prevCfg) })

	v, err := New("missing", t.TempDir())
	require.NoError(t, err)
	v.Set("port", 9443)

	reload(v, "config.yaml")

	assert.Equal(t, 9443, Get().Port)
	assert.Equal(t, "nmap", Get().Binary)
}
