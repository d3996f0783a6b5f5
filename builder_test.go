package configtree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the fluent assembly of a tree from several sources
func TestBuilder(t *testing.T) {
	t.Run("FilesAndArgs", func(t *testing.T) {
		dir := t.TempDir()
		configFile := filepath.Join(dir, "test.toml")
		require.NoError(t, os.WriteFile(configFile, []byte("host = \"filehost\"\nport = 3000\n"), 0644))

		tree, err := NewBuilder().
			WithArgs([]string{"prog", "-host", "clihost"}).
			WithFile(configFile).
			Build()
		require.NoError(t, err)

		host, err := tree.Get("host")
		require.NoError(t, err)
		assert.Equal(t, "clihost", host, "command line takes precedence over the file")

		port, err := tree.Int("port")
		require.NoError(t, err)
		assert.Equal(t, 3000, port)
	})

	t.Run("NamedOptions", func(t *testing.T) {
		tree, err := NewBuilder().
			WithNamed(Named("input", "output").Required(1), []string{"prog", "data.csv"}).
			WithINI(strings.NewReader("output = report.txt\n")).
			Build()
		require.NoError(t, err)

		input, err := tree.Get("input")
		require.NoError(t, err)
		assert.Equal(t, "data.csv", input)

		output, err := tree.Get("output")
		require.NoError(t, err)
		assert.Equal(t, "report.txt", output)
	})

	t.Run("FileOrderFirstWins", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "first.toml")
		second := filepath.Join(dir, "second.toml")
		require.NoError(t, os.WriteFile(first, []byte("key = \"one\"\n"), 0644))
		require.NoError(t, os.WriteFile(second, []byte("key = \"two\"\nonly = \"here\"\n"), 0644))

		tree, err := NewBuilder().WithFile(first).WithFile(second).Build()
		require.NoError(t, err)

		key, err := tree.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "one", key)

		only, err := tree.Get("only")
		require.NoError(t, err)
		assert.Equal(t, "here", only)
	})

	t.Run("Validator", func(t *testing.T) {
		_, err := NewBuilder().
			WithINI(strings.NewReader("port = 99999\n")).
			WithValidator(func(tree *Tree) error {
				port, err := tree.Int("port")
				if err != nil {
					return err
				}
				if port > 65535 {
					return fmt.Errorf("port %d out of range", port)
				}
				return nil
			}).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("BuildFailsOnMissingFile", func(t *testing.T) {
		_, err := NewBuilder().
			WithFile(filepath.Join(t.TempDir(), "absent.toml")).
			Build()
		assert.ErrorIs(t, err, ErrFileOpen)
	})

	t.Run("HelpPropagates", func(t *testing.T) {
		_, err := NewBuilder().
			WithNamed(Named("input"), []string{"prog", "--help"}).
			Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrHelp))
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().
				WithFile(filepath.Join(t.TempDir(), "absent.toml")).
				MustBuild()
		})
	})

	t.Run("BuildAndScan", func(t *testing.T) {
		var cfg struct {
			Host string `config:"host"`
			Port int    `config:"port"`
		}
		err := NewBuilder().
			WithINI(strings.NewReader("server.host = example.org\nserver.port = 8080\n")).
			BuildAndScan("server", &cfg)
		require.NoError(t, err)
		assert.Equal(t, "example.org", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})
}
