package configtree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single physical line; multi-line quoted values are
// accumulated across lines and are not limited by it.
const maxLineSize = 1024 * 1024

// ReadINI parses an INI-style character stream into the tree. Section lines
// '[prefix]' set the dotted prefix for the assignments that follow; '#'
// starts a comment; values may be quoted with ' or " and quoted values may
// span multiple lines. When overwrite is false, assignments whose key
// already exists in the tree are parsed but not written.
func (t *Tree) ReadINI(r io.Reader, overwrite bool) error {
	return t.ReadININame(r, "stream", overwrite)
}

// ReadININame is ReadINI with a custom source name for error messages,
// typically "stdin" or a file name.
func (t *Tree) ReadININame(r io.Reader, srcname string, overwrite bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	prefix := ""
	keysInFile := make(map[string]bool)

	for sc.Scan() {
		line := ltrim(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case '#':
			// full-line comment

		case '[':
			line = rtrim(line)
			if strings.HasSuffix(line, "]") {
				prefix = trim(line[1 : len(line)-1])
				if prefix != "" {
					prefix += "."
				}
			}
			// a section line without a closing bracket is silently
			// ignored; candidate for an error in a future revision

		default:
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			mid := strings.IndexByte(line, '=')
			if mid < 0 {
				continue
			}
			key := prefix + trim(line[:mid])
			value := readValue(sc, ltrim(line[mid+1:]))

			if keysInFile[key] {
				return fmt.Errorf("%w: key %q appears twice in %s", ErrDuplicateKey, key, srcname)
			}
			keysInFile[key] = true

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
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", srcname, err)
	}
	return nil
}

// readValue finishes the right-hand side of an assignment. A value starting
// with a quote character accumulates raw lines until one ends (right-trimmed)
// with the same quote; end of input closes the value instead of erroring.
// Unquoted values are right-trimmed only.
func readValue(sc *bufio.Scanner, value string) string {
	if value == "" || (value[0] != '\'' && value[0] != '"') {
		return rtrim(value)
	}
	quote := value[0]
	value = value[1:]
	for !hasClosingQuote(value, quote) {
		if sc.Scan() {
			value = value + "\n" + sc.Text()
		} else {
			value = value + string(quote)
		}
	}
	value = rtrim(value)
	return value[:len(value)-1]
}

func hasClosingQuote(value string, quote byte) bool {
	trimmed := rtrim(value)
	return len(trimmed) > 0 && trimmed[len(trimmed)-1] == quote
}

// ReadINIFile parses the INI file at path into the tree. A file that cannot
// be opened yields ErrFileOpen naming the path.
func (t *Tree) ReadINIFile(path string, overwrite bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileOpen, path, err)
	}
	defer f.Close()

	return t.ReadININame(f, fmt.Sprintf("file '%s'", path), overwrite)
}
