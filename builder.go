package configtree

import (
	"fmt"
	"io"
)

// ValidatorFunc validates a fully loaded tree and returns an error to abort
// the build.
type ValidatorFunc func(t *Tree) error

// Builder assembles a tree from several sources with a fluent interface.
// Sources are applied in precedence order: named options first, then simple
// "-key value" options, then files and readers in the order given. Later
// sources never replace keys set by earlier ones, so the command line wins
// over any file.
type Builder struct {
	tree       *Tree
	named      *NamedOptions
	namedArgs  []string
	args       []string
	files      []string
	readers    []io.Reader
	validators []ValidatorFunc
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	return &Builder{tree: New()}
}

// WithNamed parses args with the given named-option parser during Build.
func (b *Builder) WithNamed(opts *NamedOptions, args []string) *Builder {
	b.named = opts
	b.namedArgs = args
	return b
}

// WithArgs parses args as simple "-key value" options during Build. args is
// the full argument vector including the program name.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithFile adds a configuration file; the format is detected from the
// extension (INI when unrecognized). Files load in the order added.
func (b *Builder) WithFile(path string) *Builder {
	b.files = append(b.files, path)
	return b
}

// WithINI adds an INI-format stream to read during Build.
func (b *Builder) WithINI(r io.Reader) *Builder {
	b.readers = append(b.readers, r)
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build. Validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads all configured sources and returns the resulting tree.
func (b *Builder) Build() (*Tree, error) {
	if b.named != nil {
		if err := b.named.Parse(b.namedArgs, b.tree); err != nil {
			return nil, err
		}
	}
	if len(b.args) > 0 {
		if err := b.tree.ReadOptions(b.args); err != nil {
			return nil, err
		}
	}
	for _, path := range b.files {
		if err := b.tree.LoadFile(path, false); err != nil {
			return nil, err
		}
	}
	for _, r := range b.readers {
		if err := b.tree.ReadINI(r, false); err != nil {
			return nil, err
		}
	}
	for _, validator := range b.validators {
		if err := validator(b.tree); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return b.tree, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Tree {
	tree, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return tree
}

// BuildAndScan builds the tree and decodes the subtree at basePath into the
// provided target struct pointer.
func (b *Builder) BuildAndScan(basePath string, target any) error {
	tree, err := b.Build()
	if err != nil {
		return err
	}
	return tree.Scan(basePath, target)
}
