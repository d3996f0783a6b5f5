// Package configtree provides a hierarchical key-value configuration store
// with dotted-path addressing, typed value access, and a family of text
// parsers: an INI-like file format and two command-line option styles.
//
// Features:
//   - Hierarchical string store addressed by dotted paths ("server.port")
//   - Insertion-order key listings per tree node
//   - Typed retrieval via generics (Get[int], Get[[]float64], Get[[4]bool], ...)
//   - INI-style files with sections, comments, and multi-line quoted values
//   - Simple "-key value" and python-like named command-line options
//   - Struct decoding through mapstructure
//   - TOML/YAML/JSON file loading and TOML serialization
//
// Quick Start:
//
//	tree := configtree.New()
//	if err := tree.ReadINIFile("fruit.ini", true); err != nil {
//	    log.Fatal(err)
//	}
//
//	color, err := tree.Get("fruit.pipfruit.apple")
//	port, err := configtree.GetDefault(tree, "server.port", 8080)
//	primes, err := configtree.Get[[]int](tree, "primes")
//
// The INI format looks like this:
//
//	# this file configures fruit colors in fruitsalad
//	honeydewmelon = yellow
//	fruit.tropicalfruit.orange = orange
//
//	[fruit.pipfruit]
//	apple = green/red/yellow
//	pear = green
//
// A '[prefix]' line makes all following entries use that prefix until the
// next section line. Leading and trailing whitespace is removed from values
// unless they are wrapped in single or double quotes; quoted values may span
// multiple lines.
//
// Error Handling:
// All failure modes are sentinel errors (ErrNotFound, ErrConflict, ErrParse,
// ...) wrapped with context, so callers can match with errors.Is. A help
// request from the named-option parser is a *HelpError carrying the usage
// text; it unwraps to ErrHelp and is a deliberate early exit, not a failure.
//
// Concurrency:
// A Tree is a plain in-memory structure with no internal locking. Callers
// that share a Tree across goroutines must add their own synchronization.
package configtree
