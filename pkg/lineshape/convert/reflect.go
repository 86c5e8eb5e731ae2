package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"time"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	durationReflectType = reflect.TypeOf(time.Duration(0))
)

// Text returns a Type for t, whose pointer must implement
// encoding.TextUnmarshaler. The unmarshaler is responsible for rejecting
// partial input.
func Text(t reflect.Type) (Type, error) {
	if !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return nil, fmt.Errorf("%s does not implement encoding.TextUnmarshaler", t)
	}
	return textType{t: t}, nil
}

type textType struct {
	t reflect.Type
}

func (t textType) Name() string { return t.t.String() }

func (t textType) Convert(raw string) (any, error) {
	v := reflect.New(t.t)
	if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
		return nil, &Error{Type: t.Name(), Raw: raw, Err: err}
	}
	return v.Elem().Interface(), nil
}

// ForType returns the Type used to convert text into a Go value of type t.
// TextUnmarshaler implementations take precedence over the kind, so named
// types can override the built-in conversion.
func ForType(t reflect.Type) (Type, error) {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textType{t: t}, nil
	}
	if t == durationReflectType {
		return Duration, nil
	}

	switch t.Kind() {
	case reflect.String:
		return String, nil
	case reflect.Bool:
		return Bool, nil
	case reflect.Int:
		return Int, nil
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int64:
		return Int64, nil
	case reflect.Uint:
		return Uint, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint64:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	}
	return nil, fmt.Errorf("no conversion for type %s", t)
}
