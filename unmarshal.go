package venn

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// UnmarshalAttributes stores style attributes in the struct pointed to by v.
// When a key repeats, the last value wins. Keys with no matching field are
// ignored.
//
// UnmarshalAttributes uses struct tags to map attribute keys to fields:
//   - `venn:"fill"` - maps attribute "fill" to this struct field
//   - `venn:"fill,required"` - fails if the attribute is missing
//   - `venn:"fill,omitempty"` - skips the attribute if its value is empty
//   - `venn:"-"` - ignores this field
//
// Example:
//
//	type Style struct {
//	    Fill        string  `venn:"fill"`
//	    Opacity     float64 `venn:"opacity"`
//	    StrokeWidth int     `venn:"stroke-width"`
//	}
func UnmarshalAttributes(attrs []Attribute, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal target must be a pointer to struct")
	}

	data := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		data[attr.Key] = attr.Value.native()
	}

	return unmarshalStruct(data, elem)
}

// native returns the value as a float64 or a string.
func (v Value) native() any {
	if v.Kind == ValueNumber {
		return v.Num
	}
	return v.Str
}

func unmarshalStruct(data map[string]any, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		tag := field.Tag.Get("venn")
		if tag == "-" {
			continue
		}

		tagName, opts := parseTag(tag)
		if tagName == "" {
			tagName = strings.ToLower(field.Name)
		}

		value, ok := data[tagName]
		if !ok {
			if hasOption(opts, "required") {
				return fmt.Errorf("required attribute %s not found", tagName)
			}
			continue
		}

		if hasOption(opts, "omitempty") && isEmpty(value) {
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("attribute %s: %w", tagName, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		return setString(field, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(field, value)
	case reflect.Float32, reflect.Float64:
		return setFloat(field, value)
	case reflect.Bool:
		return setBool(field, value)
	case reflect.Ptr:
		ptr := reflect.New(field.Type().Elem())
		if err := setField(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	case reflect.Interface:
		field.Set(reflect.ValueOf(value))
		return nil
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

func setString(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		field.SetString(v)
	case float64:
		field.SetString(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		field.SetString(fmt.Sprint(v))
	}
	return nil
}

func setInt(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as int", v)
		}
		field.SetInt(i)
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("cannot use %v as int", v)
		}
		field.SetInt(int64(v))
	default:
		return fmt.Errorf("cannot convert %T to int", v)
	}
	return nil
}

func setUint(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		i, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as uint", v)
		}
		field.SetUint(i)
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return fmt.Errorf("cannot use %v as uint", v)
		}
		field.SetUint(uint64(v))
	default:
		return fmt.Errorf("cannot convert %T to uint", v)
	}
	return nil
}

func setFloat(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as float", v)
		}
		field.SetFloat(f)
	case float64:
		field.SetFloat(v)
	default:
		return fmt.Errorf("cannot convert %T to float", v)
	}
	return nil
}

func setBool(field reflect.Value, value any) error {
	switch v := value.(type) {
	case string:
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case float64:
		field.SetBool(v != 0)
	default:
		return fmt.Errorf("cannot convert %T to bool", v)
	}
	return nil
}

// Helper functions

func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return v == 0
	default:
		return false
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value: %s", s)
	}
}
