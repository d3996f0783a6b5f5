package configtree

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Host    string        `config:"host"`
	Port    int           `config:"port"`
	Debug   bool          `config:"debug"`
	Timeout time.Duration `config:"timeout"`
	Tags    []string      `config:"tags"`
	Limits  []int         `config:"limits"`
}

// TestScan tests decoding a subtree into a struct
func TestScan(t *testing.T) {
	input := `
[server]
host = example.org
port = 8443
debug = yes
timeout = 1m30s
tags = alpha beta gamma
limits = 10 20 30
`
	tree := New()
	require.NoError(t, tree.ReadINI(strings.NewReader(input), true))

	t.Run("Subtree", func(t *testing.T) {
		var cfg serverConfig
		require.NoError(t, tree.Scan("server", &cfg))

		assert.Equal(t, "example.org", cfg.Host)
		assert.Equal(t, 8443, cfg.Port)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.Tags)
		assert.Equal(t, []int{10, 20, 30}, cfg.Limits)
	})

	t.Run("WholeTree", func(t *testing.T) {
		var cfg struct {
			Server serverConfig `config:"server"`
		}
		require.NoError(t, tree.Scan("", &cfg))
		assert.Equal(t, "example.org", cfg.Server.Host)
		assert.Equal(t, 8443, cfg.Server.Port)
	})

	t.Run("MissingPathLeavesDefaults", func(t *testing.T) {
		cfg := serverConfig{Host: "default", Port: 80}
		require.NoError(t, tree.Scan("nothing.here", &cfg))
		assert.Equal(t, "default", cfg.Host)
		assert.Equal(t, 80, cfg.Port)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var cfg serverConfig
		err := tree.Scan("server", cfg)
		assert.Error(t, err)
	})

	t.Run("BadFieldValue", func(t *testing.T) {
		bad := New()
		require.NoError(t, bad.Set("server.port", "not-a-number"))
		var cfg serverConfig
		assert.Error(t, bad.Scan("server", &cfg))
	})
}
