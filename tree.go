package configtree

import (
	"fmt"
	"io"
	"strings"
)

// Tree is a hierarchical mapping from dotted key paths to string values.
// Every node holds local values and owned child nodes, each with an
// insertion-order key listing. A key containing '.' is resolved by splitting
// at the first dot: the head selects (or creates) a child node and resolution
// recurses with the remainder.
type Tree struct {
	prefix string // full dotted path of this node, used only in error messages

	values map[string]string
	subs   map[string]*Tree

	valueKeys []string
	subKeys   []string
}

// emptyTree is the shared read-only result of SubTree for missing subtrees.
// It must never be mutated.
var emptyTree = &Tree{}

// New creates an empty configuration tree.
func New() *Tree {
	return &Tree{
		values: make(map[string]string),
		subs:   make(map[string]*Tree),
	}
}

// splitPath splits a dotted key at the first dot. dotted is false for a
// local key without hierarchy.
func splitPath(key string) (head, rest string, dotted bool) {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:], true
	}
	return key, "", false
}

func (t *Tree) conflictErr(key string) error {
	return fmt.Errorf("%w: key %q (prefix %q)", ErrConflict, key, t.prefix)
}

func (t *Tree) notFoundErr(key string) error {
	return fmt.Errorf("%w: key %q (prefix %q)", ErrNotFound, key, t.prefix)
}

// HasKey reports whether key resolves to an existing value entry. A path
// segment occurring both as a value and as a subtree yields ErrConflict.
func (t *Tree) HasKey(key string) (bool, error) {
	if head, rest, dotted := splitPath(key); dotted {
		s, ok := t.subs[head]
		if !ok {
			return false, nil
		}
		if _, dup := t.values[head]; dup {
			return false, t.conflictErr(head)
		}
		return s.HasKey(rest)
	}
	if _, ok := t.values[key]; ok {
		if _, dup := t.subs[key]; dup {
			return false, t.conflictErr(key)
		}
		return true, nil
	}
	return false, nil
}

// HasSub reports whether key resolves to an existing subtree. Same conflict
// check as HasKey.
func (t *Tree) HasSub(key string) (bool, error) {
	if head, rest, dotted := splitPath(key); dotted {
		s, ok := t.subs[head]
		if !ok {
			return false, nil
		}
		if _, dup := t.values[head]; dup {
			return false, t.conflictErr(head)
		}
		return s.HasSub(rest)
	}
	if _, ok := t.subs[key]; ok {
		if _, dup := t.values[key]; dup {
			return false, t.conflictErr(key)
		}
		return true, nil
	}
	return false, nil
}

// Set assigns value to key, creating intermediate subtrees as needed. A new
// local key is appended to the node's value-key listing; assigning an
// existing key overwrites in place. Conflicts on the way down yield
// ErrConflict.
func (t *Tree) Set(key, value string) error {
	if head, rest, dotted := splitPath(key); dotted {
		s, err := t.Sub(head)
		if err != nil {
			return err
		}
		return s.Set(rest, value)
	}
	exists, err := t.HasKey(key)
	if err != nil {
		return err
	}
	if !exists {
		t.valueKeys = append(t.valueKeys, key)
	}
	t.values[key] = value
	return nil
}

// Get returns the raw string stored at key without creating anything.
// A missing key yields ErrNotFound.
func (t *Tree) Get(key string) (string, error) {
	if head, rest, dotted := splitPath(key); dotted {
		s, err := t.SubTree(head, false)
		if err != nil {
			return "", err
		}
		return s.Get(rest)
	}
	exists, err := t.HasKey(key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", t.notFoundErr(key)
	}
	return t.values[key], nil
}

// GetDefault returns the raw string stored at key, or def if the key does
// not exist. Conflict detection still applies.
func (t *Tree) GetDefault(key, def string) (string, error) {
	exists, err := t.HasKey(key)
	if err != nil {
		return "", err
	}
	if !exists {
		return def, nil
	}
	return t.Get(key)
}

// Sub returns the subtree at key, creating it and any intermediate subtrees
// as needed. A path segment already present as a value yields ErrConflict.
func (t *Tree) Sub(key string) (*Tree, error) {
	if head, rest, dotted := splitPath(key); dotted {
		s, err := t.Sub(head)
		if err != nil {
			return nil, err
		}
		return s.Sub(rest)
	}
	if _, dup := t.values[key]; dup {
		return nil, t.conflictErr(key)
	}
	s, ok := t.subs[key]
	if !ok {
		s = New()
		t.subs[key] = s
		t.subKeys = append(t.subKeys, key)
	}
	s.prefix = t.prefix + key + "."
	return s, nil
}

// SubTree returns the subtree at key without creating anything. When the
// subtree is missing it returns a shared empty tree, or ErrNotFound if
// failIfMissing is set. The returned empty tree must not be modified.
func (t *Tree) SubTree(key string, failIfMissing bool) (*Tree, error) {
	if head, rest, dotted := splitPath(key); dotted {
		s, err := t.SubTree(head, failIfMissing)
		if err != nil {
			return nil, err
		}
		return s.SubTree(rest, failIfMissing)
	}
	if _, dup := t.values[key]; dup {
		return nil, t.conflictErr(key)
	}
	s, ok := t.subs[key]
	if !ok {
		if failIfMissing {
			return nil, fmt.Errorf("%w: subtree %q (prefix %q)", ErrNotFound, key, t.prefix)
		}
		return emptyTree, nil
	}
	return s, nil
}

// ValueKeys returns the local value keys of this node in first-insertion
// order. The listing is not recursive.
func (t *Tree) ValueKeys() []string {
	return t.valueKeys
}

// SubKeys returns the local subtree keys of this node in first-insertion
// order. The listing is not recursive.
func (t *Tree) SubKeys() []string {
	return t.subKeys
}

// Prefix returns the full dotted path of this node from the root, with a
// trailing dot for non-root nodes. It is informational only.
func (t *Tree) Prefix() string {
	return t.prefix
}

// Report serializes the tree: one 'key = "value"' line per local value in
// insertion order, then a '[ full.path ]' header plus recursive body per
// subtree in insertion order. Embedded quote characters in values are not
// escaped, so such values do not survive a reparse.
func (t *Tree) Report(w io.Writer) error {
	return t.report(w, "")
}

func (t *Tree) report(w io.Writer, prefix string) error {
	for _, k := range t.valueKeys {
		if _, err := fmt.Fprintf(w, "%s = \"%s\"\n", k, t.values[k]); err != nil {
			return err
		}
	}
	for _, k := range t.subKeys {
		if _, err := fmt.Fprintf(w, "[ %s ]\n", prefix+t.prefix+k); err != nil {
			return err
		}
		if err := t.subs[k].report(w, prefix); err != nil {
			return err
		}
	}
	return nil
}
