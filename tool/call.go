package tool

import (
	"context"
	"encoding"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/casualjim/strix/pkg/reflectx"
	"github.com/casualjim/strix/pkg/slogx"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Call runs the tool with the JSON arguments generated by the model and
// returns the result formatted as text.
func (td Definition) Call(ctx context.Context, arguments string) (string, error) {
	if !reflectx.IsFunction(td.Function) {
		return "", fmt.Errorf("tool %s has nil function", td.Name)
	}
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	if !gjson.Valid(arguments) {
		return "", fmt.Errorf("%w: %s is not valid JSON", ErrInvalidArguments, arguments)
	}

	args, err := td.buildArgList(ctx, gjson.Parse(arguments))
	if err != nil {
		return "", err
	}

	results := reflect.ValueOf(td.Function).Call(args)
	return formatResults(results)
}

func (td Definition) buildArgList(ctx context.Context, args gjson.Result) ([]reflect.Value, error) {
	typ := reflect.TypeOf(td.Function)
	callArgs := make([]reflect.Value, 0, typ.NumIn())
	if typ.NumIn() > 0 && typ.In(0) == contextType {
		callArgs = append(callArgs, reflect.ValueOf(ctx))
	}

	for i, paramType := range modelParams(typ) {
		name := td.paramName(i)
		raw := args.Get(gjson.Escape(name))
		if !raw.Exists() {
			return nil, fmt.Errorf("%w: missing argument %q for %s", ErrInvalidArguments, name, td.Name)
		}

		v, err := decodeArg(raw, paramType)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %q for %s: %w", ErrInvalidArguments, name, td.Name, err)
		}
		callArgs = append(callArgs, v)
	}
	return callArgs, nil
}

func decodeArg(raw gjson.Result, typ reflect.Type) (reflect.Value, error) {
	switch typ.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map, reflect.Ptr, reflect.Array:
		ptr := reflect.New(typ)
		if err := json.Unmarshal([]byte(raw.Raw), ptr.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	return reflectx.ConvertTo(raw.Value(), typ)
}

func formatResults(results []reflect.Value) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	last := results[len(results)-1]
	if last.Type().Implements(errorType) && !last.IsNil() {
		return "", last.Interface().(error)
	}
	if len(results) == 1 && last.Type().Implements(errorType) {
		return "", nil
	}

	res := results[0]
	if res.Kind() == reflect.Interface || res.Kind() == reflect.Ptr {
		if res.IsNil() {
			return "", nil
		}
	}
	return formatValue(res.Interface())
}

func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case encoding.TextMarshaler:
		b, err := val.MarshalText()
		if err != nil {
			slog.Error("Error marshalling function return", slogx.Error(err))
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			slog.Error("Error marshalling function return", slogx.Error(err))
			return "", err
		}
		return string(b), nil
	}
}
