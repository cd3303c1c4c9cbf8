package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, Config{
		ServerEndpointAddr:  "127.0.0.1:50051",
		OnlineCheckInterval: 3 * time.Second,
		CachePath:           "gigbook-cache.db",
	}, c)
}

func TestLoadConfig_DefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"gigbook"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "gigbook-cache.db", cfg.CachePath)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_endpoint_addr: books.example.com:443\n"+
			"online_check_interval: 30s\n"+
			"cache_path: /var/cache/gigbook.db\n"), 0o600))

	os.Args = []string{"gigbook", "-c", path, "-a", "127.0.0.1:6000"}

	cfg := LoadConfig()

	assert.Equal(t, "127.0.0.1:6000", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "/var/cache/gigbook.db", cfg.CachePath)
}
