package configtree

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at basePath into the target struct or map using
// mapstructure. Field names map through the `config` struct tag. All tree
// leaves are strings; weakly-typed decoding plus the hooks below convert
// them to the field types. A missing basePath decodes as an empty section
// and leaves the target untouched.
func (t *Tree) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	node := t
	if basePath != "" {
		sub, err := t.SubTree(basePath, false)
		if err != nil {
			return err
		}
		node = sub
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToBoolHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			stringToSliceHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(node.toNestedMap()); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// stringToBoolHookFunc applies the tree's boolean vocabulary (yes/no in
// addition to true/false and integers), which strconv.ParseBool does not
// cover.
func stringToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, to reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		return parseBool(data.(string))
	}
}

// stringToSliceHookFunc splits string values on whitespace for slice
// targets, matching the sequence format of the value parsers.
func stringToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, to reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		if to == reflect.TypeOf([]byte(nil)) {
			return data, nil
		}
		return splitFields(data.(string)), nil
	}
}
