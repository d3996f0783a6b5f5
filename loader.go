package configtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a configuration file into the tree, detecting the format
// from the file extension: .toml, .yaml/.yml, and .json decode to a nested
// map and merge as dotted paths; anything else parses as the INI format.
// When overwrite is false, keys already present in the tree are kept.
func (t *Tree) LoadFile(path string, overwrite bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileOpen, path, err)
	}

	switch detectFormat(path) {
	case "toml":
		nested := make(map[string]any)
		if err := toml.Unmarshal(data, &nested); err != nil {
			return fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
		return t.mergeFlat(flattenMap(nested, ""), overwrite)

	case "yaml":
		nested := make(map[string]any)
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
		return t.mergeFlat(flattenMap(nested, ""), overwrite)

	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // preserve number literals verbatim
		nested := make(map[string]any)
		if err := decoder.Decode(&nested); err != nil {
			return fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
		return t.mergeFlat(flattenMap(nested, ""), overwrite)

	default:
		return t.ReadININame(bytes.NewReader(data), fmt.Sprintf("file '%s'", path), overwrite)
	}
}

// detectFormat maps a file extension to a parser name; empty means INI.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return ""
}

// mergeFlat writes flattened path/value pairs into the tree in sorted path
// order, so insertion order is deterministic across runs.
func (t *Tree) mergeFlat(flat map[string]any, overwrite bool) error {
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if !overwrite {
			exists, err := t.HasKey(path)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
		}
		if err := t.Set(path, formatValue(flat[path])); err != nil {
			return err
		}
	}
	return nil
}

// LoadEnv merges environment variables carrying the given prefix into the
// tree. The remainder of the variable name is lowercased and underscores
// become dots, the inverse of the usual PREFIX_SERVER_PORT convention.
func (t *Tree) LoadEnv(prefix string, overwrite bool) error {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		key = strings.ReplaceAll(key, "_", ".")
		if key == "" {
			continue
		}
		if !overwrite {
			exists, err := t.HasKey(key)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
		}
		if err := t.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile writes the tree to path as TOML using an atomic temp-file write.
func (t *Tree) SaveFile(path string) error {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(t.toNestedMap()); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile writes data to a temporary file in the target directory
// and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op once the rename succeeds

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
