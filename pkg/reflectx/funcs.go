// Package reflectx inspects and invokes plain Go functions registered as model tools.
package reflectx

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// IsFunction reports whether fn is a non-nil function value.
func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}
	return reflect.TypeOf(fn).Kind() == reflect.Func
}

// FunctionName derives a name for fn from the runtime symbol table.
// Named function types report their type name, everything else reports the
// last segment of the symbol with the method value suffix removed.
func FunctionName(fn any) string {
	if !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()
	if typ.Name() != "" {
		return typ.String()
	}

	f := runtime.FuncForPC(val.Pointer())
	if f == nil {
		return typ.String()
	}
	name := f.Name()
	if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
		name = name[lastDot+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// ConvertTo converts a decoded JSON value (string, float64, bool, nil,
// []any or map[string]any) into a value assignable to typ.
func ConvertTo(v any, typ reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(typ), nil
	}

	rv := reflect.ValueOf(v)
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := v.(float64)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, typ)
		}
		if f != float64(int64(f)) {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s: not an integer", f, typ)
		}
		return reflect.ValueOf(int64(f)).Convert(typ), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := v.(float64)
		if !ok || f < 0 || f != float64(uint64(f)) {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s", v, typ)
		}
		return reflect.ValueOf(uint64(f)).Convert(typ), nil
	case reflect.String:
		// ConvertibleTo allows numeric to string conversions, which yield runes.
		s, ok := v.(string)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, typ)
		}
		return reflect.ValueOf(s).Convert(typ), nil
	case reflect.Interface:
		if rv.Type().Implements(typ) {
			return rv, nil
		}
	}

	if rv.Type().ConvertibleTo(typ) {
		return rv.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, typ)
}
