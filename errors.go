package configtree

import "errors"

// Sentinel errors for the failure modes of the tree, the value parsers, and
// the option parsers. They are always returned wrapped with context via
// fmt.Errorf("%w: ..."), so callers should match with errors.Is.
var (
	// ErrNotFound indicates a key or subtree that does not exist in a
	// non-creating access.
	ErrNotFound = errors.New("key not found")

	// ErrConflict indicates a local key that occurs both as a value and as
	// a subtree within the same node.
	ErrConflict = errors.New("key occurs as value and as subtree")

	// ErrParse indicates a stored string that cannot be converted to the
	// requested type.
	ErrParse = errors.New("cannot parse value")

	// ErrDuplicateKey indicates the same fully-qualified key appearing twice
	// within one parse invocation.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrFileOpen indicates a configuration file that could not be opened.
	ErrFileOpen = errors.New("could not open configuration file")

	// ErrMissingValue indicates an option without its mandatory value.
	ErrMissingValue = errors.New("value missing for parameter")

	// ErrUnknownParameter indicates a named option outside the declared
	// keyword list when extra options are not allowed.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrSuperfluousParameter indicates a positional argument with no
	// keyword left to consume it.
	ErrSuperfluousParameter = errors.New("superfluous unnamed parameter")

	// ErrAlreadySpecified indicates an option that would overwrite an
	// existing non-empty value while overwriting is disabled.
	ErrAlreadySpecified = errors.New("parameter already specified")

	// ErrMissingParameter indicates required keywords left unset after all
	// arguments were consumed.
	ErrMissingParameter = errors.New("missing parameter(s)")

	// ErrHelp is the sentinel a *HelpError unwraps to. It is a deliberate
	// early-exit signal, not a processing failure.
	ErrHelp = errors.New("help requested")
)

// HelpError is returned by the named-option parser when -h or --help is
// encountered. It carries the generated usage text and unwraps to ErrHelp.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string { return e.Usage }

func (e *HelpError) Unwrap() error { return ErrHelp }
