package configtree

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// whitespace is the separator set of the text formats: space, tab, newline,
// carriage return.
const whitespace = " \t\n\r"

func trim(s string) string  { return strings.Trim(s, whitespace) }
func ltrim(s string) string { return strings.TrimLeft(s, whitespace) }
func rtrim(s string) string { return strings.TrimRight(s, whitespace) }

// splitFields splits s on runs of whitespace, dropping empty tokens.
func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// Get returns the value at key converted to T. A missing key yields
// ErrNotFound; a stored string that does not convert yields ErrParse
// annotated with the full key path.
func Get[T any](t *Tree, key string) (T, error) {
	var zero T
	exists, err := t.HasKey(key)
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, t.notFoundErr(key)
	}
	raw, err := t.Get(key)
	if err != nil {
		return zero, err
	}
	v, err := Parse[T](raw)
	if err != nil {
		return zero, fmt.Errorf("%w for key %q", err, t.prefix+key)
	}
	return v, nil
}

// GetDefault returns the value at key converted to T, or def if the key
// does not exist. Parse failures still propagate.
func GetDefault[T any](t *Tree, key string, def T) (T, error) {
	exists, err := t.HasKey(key)
	if err != nil {
		var zero T
		return zero, err
	}
	if !exists {
		return def, nil
	}
	return Get[T](t, key)
}

// Parse converts a source string to T. Supported types: string (trimmed),
// bool (yes/true/no/false or integer), signed and unsigned integers, floats,
// time.Duration, fixed-size arrays (exact token arity), [N]bool bit sets,
// and slices of any supported element type (whitespace-delimited, unbounded).
// Scalar conversion must consume the entire trimmed input: "42abc" is an
// error, not 42.
func Parse[T any](s string) (T, error) {
	var out T
	if err := parseValue(reflect.ValueOf(&out).Elem(), s); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// parseValue parses s into dst, dispatching on the destination type. This is
// the single authoritative conversion routine; Get, GetDefault, and the typed
// accessor methods all funnel through it.
func parseValue(dst reflect.Value, s string) error {
	typ := dst.Type()

	if typ == durationType {
		d, err := time.ParseDuration(trim(s))
		if err != nil {
			return parseErr(s, typ)
		}
		dst.SetInt(int64(d))
		return nil
	}

	switch typ.Kind() {
	case reflect.String:
		dst.SetString(trim(s))
		return nil

	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		dst.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(trim(s), 10, typ.Bits())
		if err != nil {
			return parseErr(s, typ)
		}
		dst.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(trim(s), 10, typ.Bits())
		if err != nil {
			return parseErr(s, typ)
		}
		dst.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(trim(s), typ.Bits())
		if err != nil {
			return parseErr(s, typ)
		}
		dst.SetFloat(f)
		return nil

	case reflect.Slice:
		fields := splitFields(s)
		out := reflect.MakeSlice(typ, len(fields), len(fields))
		for i, field := range fields {
			if err := parseValue(out.Index(i), field); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil

	case reflect.Array:
		if typ.Elem().Kind() == reflect.Bool {
			return parseBitSet(dst, s)
		}
		return parseRange(dst, s)

	default:
		return fmt.Errorf("%w %q: unsupported type %s", ErrParse, s, typ)
	}
}

// parseBool accepts yes/true and no/false case-insensitively; any other
// string is parsed as an integer and treated as true when non-zero.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(trim(s)) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	}
	i, err := strconv.ParseInt(trim(s), 10, 64)
	if err != nil {
		return false, parseErr(s, reflect.TypeOf(true))
	}
	return i != 0, nil
}

// parseRange fills a fixed-size array from whitespace-delimited tokens.
// The arity is exact: too few tokens and too many tokens are both errors.
func parseRange(dst reflect.Value, s string) error {
	n := dst.Len()
	elem := dst.Type().Elem()
	fields := splitFields(s)

	for i := 0; i < n; i++ {
		if i >= len(fields) {
			return fmt.Errorf("%w %q as a range of items of type %s (%d items were extracted successfully)",
				ErrParse, s, elem, i)
		}
		if err := parseValue(dst.Index(i), fields[i]); err != nil {
			return fmt.Errorf("%w %q as a range of items of type %s (%d items were extracted successfully)",
				ErrParse, s, elem, i)
		}
	}
	if len(fields) > n {
		return fmt.Errorf("%w %q as a range of %d items of type %s (more items than the range can hold)",
			ErrParse, s, n, elem)
	}
	return nil
}

// parseBitSet fills a [N]bool from exactly N boolean tokens.
func parseBitSet(dst reflect.Value, s string) error {
	n := dst.Len()
	fields := splitFields(s)
	if len(fields) != n {
		return fmt.Errorf("%w %q as a bit set of size %d because of unmatching size %d",
			ErrParse, s, n, len(fields))
	}
	for i := 0; i < n; i++ {
		b, err := parseBool(fields[i])
		if err != nil {
			return err
		}
		dst.Index(i).SetBool(b)
	}
	return nil
}

func parseErr(s string, typ reflect.Type) error {
	return fmt.Errorf("%w %q as a %s", ErrParse, s, typ)
}
