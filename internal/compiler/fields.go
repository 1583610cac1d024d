package compiler

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// FieldError describes a descriptor field that could not be applied.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q=%q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// InjectFields parses fields into the typed settings exposed by node and by its
// behaviour or predicate. Keys are applied in lexical order; each failing key is
// reported and skipped while the remaining keys are still applied.
func InjectFields(node domain.Node, fields map[string]string) []error {
	if len(fields) == 0 {
		return nil
	}
	targets := settingsTargets(node)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := applyField(targets, key, fields[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func settingsTargets(node domain.Node) []any {
	var targets []any
	add := func(v any) {
		if c, ok := v.(domain.Configurable); ok {
			if s := c.Settings(); s != nil {
				targets = append(targets, s)
			}
		}
	}

	add(node)
	switch n := node.(type) {
	case *domain.State:
		add(n.Behavior())
	case *domain.Condition:
		add(n.Predicate())
	}
	return targets
}

// applyField offers key to each target in turn. The first target that declares
// the key owns it: a parse or validation failure there is final.
func applyField(targets []any, key, value string) error {
	for _, target := range targets {
		saved, ok := snapshot(target)
		if !ok {
			continue
		}

		var md mapstructure.Metadata
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: parsePrimitive,
			Metadata:   &md,
			Result:     target,
		})
		if err != nil {
			return &FieldError{Key: key, Value: value, Err: err}
		}

		if err := dec.Decode(map[string]any{key: value}); err != nil {
			restore(target, saved)
			return &FieldError{Key: key, Value: value, Err: errors.Join(domain.ErrInvalidField, err)}
		}
		if contains(md.Unused, key) {
			continue
		}
		if v, ok := target.(domain.Validator); ok {
			if err := v.Validate(); err != nil {
				restore(target, saved)
				return &FieldError{Key: key, Value: value, Err: errors.Join(domain.ErrInvalidField, err)}
			}
		}
		return nil
	}
	return &FieldError{Key: key, Value: value, Err: domain.ErrUnknownField}
}

// parsePrimitive converts a field string into a numeric or boolean setting.
// Numbers are decimal only and booleans are "true" or "false" in any case;
// empty values are rejected instead of zeroing the setting.
func parsePrimitive(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))

	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil, errEmptyValue
		}
		f, err := strconv.ParseFloat(raw, to.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(to).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil, errEmptyValue
		}
		n, err := strconv.ParseInt(raw, 10, to.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(to).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			return nil, errEmptyValue
		}
		n, err := strconv.ParseUint(raw, 10, to.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(to).Interface(), nil
	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q, want true or false", raw)
	}
	return data, nil
}

var errEmptyValue = errors.New("empty value")

// snapshot copies the struct behind a settings pointer so a rejected value can be undone.
func snapshot(target any) (reflect.Value, bool) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	saved := reflect.New(v.Elem().Type()).Elem()
	saved.Set(v.Elem())
	return saved, true
}

func restore(target any, saved reflect.Value) {
	reflect.ValueOf(target).Elem().Set(saved)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
