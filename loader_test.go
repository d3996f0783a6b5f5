package configtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFile tests format detection and merging for each file format
func TestLoadFile(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		path := writeTemp(t, "app.toml", `
port = 8080
debug = true

[server]
host = "localhost"
ratios = [1.5, 2.5]
`)
		tree := New()
		require.NoError(t, tree.LoadFile(path, true))

		port, err := tree.Int("port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)

		debug, err := tree.Bool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		host, err := tree.Get("server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)

		ratios, err := tree.Floats("server.ratios")
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, 2.5}, ratios)
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeTemp(t, "app.yaml", `
port: 8080
server:
  host: localhost
  tags:
    - alpha
    - beta
`)
		tree := New()
		require.NoError(t, tree.LoadFile(path, true))

		port, err := tree.Int("port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)

		host, err := tree.Get("server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)

		tags, err := tree.Strings("server.tags")
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, tags)
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeTemp(t, "app.json", `{"port": 8080, "server": {"host": "localhost", "ratio": 0.25}}`)
		tree := New()
		require.NoError(t, tree.LoadFile(path, true))

		port, err := tree.Int("port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)

		ratio, err := tree.Float64("server.ratio")
		require.NoError(t, err)
		assert.InDelta(t, 0.25, ratio, 1e-12)
	})

	t.Run("INIFallback", func(t *testing.T) {
		path := writeTemp(t, "app.conf", "[server]\nhost = localhost\n")
		tree := New()
		require.NoError(t, tree.LoadFile(path, true))

		host, err := tree.Get("server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)
	})

	t.Run("MissingFile", func(t *testing.T) {
		tree := New()
		err := tree.LoadFile(filepath.Join(t.TempDir(), "absent.toml"), true)
		assert.ErrorIs(t, err, ErrFileOpen)
	})

	t.Run("MalformedTOML", func(t *testing.T) {
		path := writeTemp(t, "bad.toml", "not toml ===")
		tree := New()
		assert.Error(t, tree.LoadFile(path, true))
	})

	t.Run("OverwriteFalseKeepsExisting", func(t *testing.T) {
		path := writeTemp(t, "app.toml", "host = \"filehost\"\nextra = \"fromfile\"\n")
		tree := New()
		require.NoError(t, tree.Set("host", "clihost"))
		require.NoError(t, tree.LoadFile(path, false))

		host, err := tree.Get("host")
		require.NoError(t, err)
		assert.Equal(t, "clihost", host)

		extra, err := tree.Get("extra")
		require.NoError(t, err)
		assert.Equal(t, "fromfile", extra)
	})

	t.Run("DeterministicOrder", func(t *testing.T) {
		path := writeTemp(t, "app.toml", "b = 1\na = 2\nc = 3\n")
		tree := New()
		require.NoError(t, tree.LoadFile(path, true))
		// merged in sorted path order regardless of file order
		assert.Equal(t, []string{"a", "b", "c"}, tree.ValueKeys())
	})
}

// TestLoadEnv tests environment variable merging
func TestLoadEnv(t *testing.T) {
	t.Setenv("CTREE_SERVER_PORT", "9090")
	t.Setenv("CTREE_DEBUG", "yes")
	t.Setenv("OTHER_IGNORED", "1")

	t.Run("PrefixAndMapping", func(t *testing.T) {
		tree := New()
		require.NoError(t, tree.LoadEnv("CTREE_", true))

		port, err := tree.Get("server.port")
		require.NoError(t, err)
		assert.Equal(t, "9090", port)

		debug, err := tree.Bool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		has, err := tree.HasKey("other.ignored")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("NoOverwrite", func(t *testing.T) {
		tree := New()
		require.NoError(t, tree.Set("server.port", "8080"))
		require.NoError(t, tree.LoadEnv("CTREE_", false))

		port, err := tree.Get("server.port")
		require.NoError(t, err)
		assert.Equal(t, "8080", port)
	})
}

// TestSaveFile tests TOML serialization and its reload round trip
func TestSaveFile(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Set("honeydewmelon", "yellow"))
	require.NoError(t, tree.Set("fruit.pipfruit.apple", "green/red/yellow"))
	require.NoError(t, tree.Set("fruit.stonefruit.cherry", "red"))

	path := filepath.Join(t.TempDir(), "out", "saved.toml")
	require.NoError(t, tree.SaveFile(path))

	reloaded := New()
	require.NoError(t, reloaded.LoadFile(path, true))

	for _, key := range []string{"honeydewmelon", "fruit.pipfruit.apple", "fruit.stonefruit.cherry"} {
		want, err := tree.Get(key)
		require.NoError(t, err)
		got, err := reloaded.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

// TestLoad tests the quick front door combining options and a file
func TestLoad(t *testing.T) {
	path := writeTemp(t, "app.toml", "host = \"filehost\"\nport = 8080\n")

	tree, err := Load(path, []string{"prog", "-host", "clihost"})
	require.NoError(t, err)

	host, err := tree.Get("host")
	require.NoError(t, err)
	assert.Equal(t, "clihost", host, "command line wins over the file")

	port, err := tree.Int("port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}
