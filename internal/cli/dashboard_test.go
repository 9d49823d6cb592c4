package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/logger"
	"github.com/rileyhilliard/sitewatch/internal/monitor"
	"github.com/rileyhilliard/sitewatch/internal/probe"
)

func TestRunDashboard_Plain(t *testing.T) {
	cfg := testConfig(config.Site{Name: "Example", URL: siteServer(t, http.StatusOK)})
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := runDashboard(ctx, dashboardOptions{
		Config: cfg,
		Out:    &out,
		Size:   monitor.FixedSize{Cols: 100, Rows: 30},
		Plain:  true,
		Logger: logger.NewBufferLogger(),
	})

	require.NoError(t, err, "cancellation is a clean stop")
	assert.Contains(t, out.String(), "Example")
	assert.Contains(t, out.String(), plainFooter)
	assert.NotContains(t, out.String(), "\x1b[2J", "no clearing without a terminal")
}

func TestRunDashboard_AlreadyCancelled(t *testing.T) {
	cfg := testConfig(config.Site{Name: "Example", URL: "http://127.0.0.1:1"})
	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runDashboard(ctx, dashboardOptions{
		Config: cfg,
		Out:    &out,
		Size:   monitor.FixedSize{Cols: 100, Rows: 30},
		Plain:  true,
	})

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestNewPool(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWorkers = 3

	pool, closePool := newPool(cfg, nil)
	defer closePool()

	assert.Equal(t, 3, pool.MaxWorkers())
}

func TestEndpoints(t *testing.T) {
	got := endpoints([]config.Site{
		{Name: "A", URL: "https://a.example"},
		{Name: "B", URL: "http://b.example"},
	})
	assert.Equal(t, []probe.Endpoint{
		{Name: "A", URL: "https://a.example"},
		{Name: "B", URL: "http://b.example"},
	}, got)
	assert.Empty(t, endpoints(nil))
}
