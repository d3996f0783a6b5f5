package configtree

import "time"

// Typed accessor methods for the common cases. They all delegate to the
// generic Get and exist so call sites without type arguments read naturally.

// String returns the value at key trimmed of surrounding whitespace.
func (t *Tree) String(key string) (string, error) {
	return Get[string](t, key)
}

// Int returns the value at key parsed as an int.
func (t *Tree) Int(key string) (int, error) {
	return Get[int](t, key)
}

// Int64 returns the value at key parsed as an int64.
func (t *Tree) Int64(key string) (int64, error) {
	return Get[int64](t, key)
}

// Bool returns the value at key parsed as a boolean (yes/true/no/false or
// integer).
func (t *Tree) Bool(key string) (bool, error) {
	return Get[bool](t, key)
}

// Float64 returns the value at key parsed as a float64.
func (t *Tree) Float64(key string) (float64, error) {
	return Get[float64](t, key)
}

// Duration returns the value at key parsed with time.ParseDuration.
func (t *Tree) Duration(key string) (time.Duration, error) {
	return Get[time.Duration](t, key)
}

// Strings returns the value at key split on whitespace.
func (t *Tree) Strings(key string) ([]string, error) {
	return Get[[]string](t, key)
}

// Ints returns the value at key as a whitespace-delimited int sequence.
func (t *Tree) Ints(key string) ([]int, error) {
	return Get[[]int](t, key)
}

// Floats returns the value at key as a whitespace-delimited float sequence.
func (t *Tree) Floats(key string) ([]float64, error) {
	return Get[[]float64](t, key)
}

// Load is the quick front door for the common tool setup: parse simple
// "-key value" command-line options, then merge the configuration file
// beneath them so options win. args is the full argument vector; path may
// be empty to skip file loading.
func Load(path string, args []string) (*Tree, error) {
	tree := New()
	if err := tree.ReadOptions(args); err != nil {
		return nil, err
	}
	if path != "" {
		if err := tree.LoadFile(path, false); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
