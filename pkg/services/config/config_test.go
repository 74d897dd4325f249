package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func allEndpoints() string {
	out := "sources:\n  endpoints:\n"
	for _, id := range domain.ConfiguredSources() {
		out += fmt.Sprintf("    %s: http://stores.internal/%s\n", id, id)
	}
	return out
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, allEndpoints()))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Sources.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.Session.CacheTTL())
	assert.Equal(t, int64(6), cfg.Thresholds.EmergencyFundAdequateMonths)
	assert.InDelta(t, 40, cfg.Thresholds.DebtServiceHighPct, 0.001)
}

func TestLoad_Overrides(t *testing.T) {
	content := `server:
  addr: ":9090"
session:
  cache_ttl_seconds: 60
thresholds:
  debt_service_high_pct: 35
` + allEndpoints() + `  timeout_seconds: 3
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Sources.Timeout())
	assert.Equal(t, time.Minute, cfg.Session.CacheTTL())
	assert.InDelta(t, 35, cfg.Thresholds.DebtServiceHighPct, 0.001)
}

func TestLoad_MissingEndpointFails(t *testing.T) {
	content := `sources:
  endpoints:
    profile: http://stores.internal/profile
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing endpoint")
}

func TestLoad_UnknownSourceFails(t *testing.T) {
	content := allEndpoints() + `    horoscopes: http://stores.internal/horoscopes
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "horoscopes"`)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
