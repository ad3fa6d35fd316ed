package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IgorEulalio/nmap-preflight/pkg/api"
	"github.com/IgorEulalio/nmap-preflight/pkg/gate"
	"github.com/IgorEulalio/nmap-preflight/pkg/nmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVersionLocator struct {
	mock.Mock
}

func (m *MockVersionLocator) Path(ctx context.Context, candidate string) (string, error) {
	args := m.Called(candidate)
	return args.String(0), args.Error(1)
}

func (m *MockVersionLocator) Exists(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockVersionLocator) Version(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func silenceGateOutput(t *testing.T) {
	t.Helper()
	prev := gate.Output
	gate.Output = io.Discard
	t.Cleanup(func() { gate.Output = prev })
}

func TestVersionHandlerInstalled(t *testing.T) {
	locator := new(MockVersionLocator)
	locator.On("Path", "").Return("/usr/bin/nmap", nil)
	locator.On("Exists", "/usr/bin/nmap").Return(true)
	locator.On("Version").Return("Nmap version 7.94", nil).Once()

	rec := httptest.NewRecorder()
	api.NewVersionHandler(locator).Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got api.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Nmap version 7.94", got.Version)
	locator.AssertExpectations(t)
}

func TestVersionHandlerResolvedPathMissing(t *testing.T) {
	silenceGateOutput(t)
	locator := new(MockVersionLocator)
	locator.On("Path", "").Return("/usr/bin/nmap", nil)
	locator.On("Exists", "/usr/bin/nmap").Return(false)

	rec := httptest.NewRecorder()
	api.NewVersionHandler(locator).Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":true,"msg":"Nmap has not been install on this system yet!"}`, rec.Body.String())
	locator.AssertNotCalled(t, "Version")
}

func TestVersionHandlerNotInstalled(t *testing.T) {
	locator := new(MockVersionLocator)
	locator.On("Path", "").Return("", &nmap.NotInstalledError{})

	rec := httptest.NewRecorder()
	api.NewVersionHandler(locator).Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), (&nmap.NotInstalledError{}).Error())
	locator.AssertNotCalled(t, "Version")
	locator.AssertNotCalled(t, "Exists", mock.Anything)
}

func TestVersionHandlerUpstreamFailure(t *testing.T) {
	locator := new(MockVersionLocator)
	locator.On("Path", "").Return("/usr/bin/nmap", nil)
	locator.On("Exists", "/usr/bin/nmap").Return(true)
	locator.On("Version").Return("", fmt.Errorf("%w: boom", nmap.ErrVersionUnavailable))

	rec := httptest.NewRecorder()
	api.NewVersionHandler(locator).Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
