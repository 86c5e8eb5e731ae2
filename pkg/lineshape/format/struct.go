package format

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
)

// TagName is the struct tag consulted by SchemaOf.
const TagName = "shape"

// SchemaOf derives a Schema from the exported fields of a struct, in
// declaration order. A field is named by its `shape:"name"` tag or, without
// a tag, by its Go name. Fields tagged `shape:"-"` are skipped.
func SchemaOf(v any) (Schema, error) {
	t, err := structType(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}

	var schema Schema
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := fieldName(sf)
		if !ok {
			continue
		}
		typ, err := convert.ForType(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("format: field %s: %w", sf.Name, err)
		}
		schema = append(schema, Field{Name: name, Type: typ})
	}
	return schema, nil
}

// CompileStruct compiles src against the schema derived from v.
func CompileStruct(src string, v any) (*Bound, error) {
	schema, err := SchemaOf(v)
	if err != nil {
		return nil, err
	}
	return Compile(src, schema)
}

// Decode matches input and stores the result in the struct pointed to by
// dst. The struct must have one field per schema field, located by the same
// naming rules as SchemaOf. Nothing is written when the match fails or a
// value does not fit its field.
func (b *Bound) Decode(input string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("format: Decode requires a non-nil pointer to a struct")
	}
	t, err := structType(rv.Type())
	if err != nil {
		return err
	}
	fields := fieldIndex(t)
	for _, f := range b.schema {
		if _, ok := fields[f.Name]; !ok {
			return fmt.Errorf("format: %s has no field for %q", t, f.Name)
		}
	}

	res, err := b.Match(input)
	if err != nil {
		return err
	}

	out := rv.Elem()
	staged := make([]reflect.Value, len(res.Values))
	for i, v := range res.Values {
		ft := out.Field(fields[v.Name]).Type()
		val, ok := assignValue(reflect.ValueOf(v.Value), ft)
		if !ok {
			return fmt.Errorf("format: cannot assign %T to field %q of type %s", v.Value, v.Name, ft)
		}
		staged[i] = val
	}
	for i, v := range res.Values {
		out.Field(fields[v.Name]).Set(staged[i])
	}
	return nil
}

// assignValue returns val as a value of type t. Only assignable values and
// values of the same kind (a named type over the converted type) qualify.
func assignValue(val reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !val.IsValid() {
		return reflect.Value{}, false
	}
	if val.Type().AssignableTo(t) {
		return val, true
	}
	if val.Kind() == t.Kind() && val.Type().ConvertibleTo(t) {
		return val.Convert(t), true
	}
	return reflect.Value{}, false
}

func structType(t reflect.Type) (reflect.Type, error) {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("format: %v is not a struct", t)
	}
	return t, nil
}

func fieldIndex(t reflect.Type) map[string]int {
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name, ok := fieldName(t.Field(i)); ok {
			idx[name] = i
		}
	}
	return idx
}

// fieldName returns the schema name of a struct field and whether the field
// takes part in the schema at all.
func fieldName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() || sf.Anonymous {
		return "", false
	}
	tag, ok := sf.Tag.Lookup(TagName)
	switch {
	case !ok || tag == "":
		return sf.Name, true
	case tag == "-":
		return "", false
	}
	return tag, true
}
