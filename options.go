package configtree

import (
	"fmt"
	"slices"
	"strings"
)

// ReadOptions scans a command-line argument vector for simple "-key value"
// pairs and stores them in the tree. args is the full vector including the
// program name at index 0; scanning starts at index 1. Dotted keys create
// subtrees as usual. Arguments not matching the pattern are ignored; an
// option at the end of the vector without its value yields ErrMissingValue.
func (t *Tree) ReadOptions(args []string) error {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		if i+1 >= len(args) {
			return fmt.Errorf("%w: last option on command line (%s) does not have an argument",
				ErrMissingValue, arg)
		}
		if err := t.Set(arg[1:], args[i+1]); err != nil {
			return err
		}
		i++ // skip over the option argument
	}
	return nil
}

// NamedOptions parses python-like named command-line options: parameters are
// expected in the order induced by the keyword list, but any keyword may be
// satisfied out of order with --key=value. Configure it fluently:
//
//	err := configtree.Named("input", "output").
//	    Required(1).
//	    Help("file to read", "file to write").
//	    Parse(os.Args, tree)
type NamedOptions struct {
	keywords  []string
	required  int
	allowMore bool
	overwrite bool
	help      []string
}

// Named creates a NamedOptions parser for the given keywords. By default all
// keywords are required, unrecognized --key=value pairs are accepted, and
// existing tree values may be overwritten.
func Named(keywords ...string) *NamedOptions {
	return &NamedOptions{
		keywords:  keywords,
		required:  len(keywords),
		allowMore: true,
		overwrite: true,
	}
}

// Required declares the first count keywords as mandatory.
func (n *NamedOptions) Required(count int) *NamedOptions {
	n.required = count
	return n
}

// AllowMore controls whether --key=value pairs outside the keyword list are
// accepted.
func (n *NamedOptions) AllowMore(allow bool) *NamedOptions {
	n.allowMore = allow
	return n
}

// Overwrite controls whether options may replace non-empty values already
// present in the destination tree.
func (n *NamedOptions) Overwrite(allow bool) *NamedOptions {
	n.overwrite = allow
	return n
}

// Help attaches per-keyword help strings, in keyword order, for the
// generated usage text.
func (n *NamedOptions) Help(help ...string) *NamedOptions {
	n.help = help
	return n
}

// Parse reads the argument vector into the tree. args is the full vector
// including the program name at index 0 (used only for the usage text).
// -h or --help anywhere aborts with a *HelpError carrying the usage text.
func (n *NamedOptions) Parse(args []string, t *Tree) error {
	progname := "program"
	if len(args) > 0 {
		progname = args[0]
	}
	usage := n.usageString(progname)

	done := make([]bool, len(n.keywords))
	current := 0

	for i := 1; i < len(args); i++ {
		opt := args[i]
		if opt == "-h" || opt == "--help" {
			return &HelpError{Usage: usage}
		}
		if strings.HasPrefix(opt, "--") {
			eq := strings.IndexByte(opt[2:], '=')
			if eq < 0 {
				return fmt.Errorf("%w %s\n%s", ErrMissingValue, opt, usage)
			}
			key := opt[2 : 2+eq]
			value := opt[2+eq+1:]
			idx := slices.Index(n.keywords, key)
			if !n.allowMore && idx < 0 {
				return fmt.Errorf("%w %s\n%s", ErrUnknownParameter, key, usage)
			}
			if err := n.store(t, key, value, usage); err != nil {
				return err
			}
			if idx >= 0 {
				done[idx] = true
			}
			continue
		}
		// positional: fill the next keyword not yet consumed
		for current < len(done) && done[current] {
			current++
		}
		if current >= len(done) {
			return fmt.Errorf("%w %q\n%s", ErrSuperfluousParameter, opt, usage)
		}
		if err := n.store(t, n.keywords[current], opt, usage); err != nil {
			return err
		}
		done[current] = true
	}

	var missing []string
	for i, kw := range n.keywords {
		if i < n.required && !done[i] {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w ... %s\n%s", ErrMissingParameter, strings.Join(missing, " "), usage)
	}
	return nil
}

// store writes one option value, honoring the overwrite setting.
func (n *NamedOptions) store(t *Tree, key, value, usage string) error {
	if !n.overwrite {
		existing, err := t.GetDefault(key, "")
		if err != nil {
			return err
		}
		if existing != "" {
			return fmt.Errorf("%w: %s\n%s", ErrAlreadySpecified, key, usage)
		}
	}
	return t.Set(key, value)
}

// usageString renders the usage text: required keywords as <name>, optional
// ones as [name], in declared order, followed by the per-keyword help lines.
func (n *NamedOptions) usageString(progname string) string {
	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(progname)
	for i, kw := range n.keywords {
		if i < n.required {
			b.WriteString(" <" + kw + ">")
		} else {
			b.WriteString(" [" + kw + "]")
		}
	}
	b.WriteString("\nOptions:\n-h / --help: this help\n")
	for i := 0; i < len(n.keywords) && i < len(n.help); i++ {
		if n.help[i] != "" {
			b.WriteString("-" + n.keywords[i] + ":\t" + n.help[i] + "\n")
		}
	}
	return b.String()
}
