// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package form

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Unmarshal copies form values into the fields of target tagged with `form`.
// Fields whose pointer implements encoding.TextUnmarshaler decode through it.
func Unmarshal(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}

	v := val.Elem()
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		fieldName := field.Tag.Get("form")
		if fieldName == "" || fieldName == "-" {
			continue
		}
		value, exists := input[fieldName]
		if !exists || len(value) == 0 {
			continue
		}
		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("form: field %q: %w", fieldName, err)
		}
	}
	return nil
}

func setField(fieldVal reflect.Value, value []string) error {
	// NOTE: Take only the first value, except for string slices.
	raw := value[0]

	if fieldVal.CanAddr() && fieldVal.Addr().Type().Implements(textUnmarshalerType) {
		if raw == "" {
			return nil
		}
		return fieldVal.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(raw)
	case reflect.Bool:
		fieldVal.SetBool(strings.ToLower(raw) == "true")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetInt(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetFloat(f)
	case reflect.Slice:
		if fieldVal.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", fieldVal.Type())
		}
		fieldVal.Set(reflect.ValueOf(append([]string(nil), value...)).Convert(fieldVal.Type()))
	default:
		return fmt.Errorf("unsupported type %s", fieldVal.Type())
	}
	return nil
}

type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}
