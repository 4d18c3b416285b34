package cli

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/system-stats/internal/config"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

func TestNewServer(t *testing.T) {
	logger.InitWithMode(logger.LogModeTest)
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "9090"},
		Auth:   config.AuthConfig{Header: "x-api-key", APIKey: "my-secret-key"},
		Stats:  config.StatsConfig{DiskPath: "/", SampleWindow: time.Second, Parallel: true},
	}

	server := NewServer(cfg, nil, nil)
	assert.Equal(t, "127.0.0.1:9090", server.Addr)

	rr := httptest.NewRecorder()
	server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/system-stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerifyPortAvailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	assert.Error(t, verifyPortAvailable(addr))

	require.NoError(t, ln.Close())
	assert.NoError(t, verifyPortAvailable(addr))
}

func TestRunServerRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("SYSTEM_STATS_AUTH_API_KEY", "")
	err := RunServer(ServerOptions{LogMode: "test"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "auth.api_key is required")
}
