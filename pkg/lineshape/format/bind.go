package format

import (
	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
)

// Field declares a named, typed value in a Schema.
type Field struct {
	Name string
	Type convert.Type
}

// Schema is the ordered list of fields of a target record. The order is the
// order of Result values, independent of the capture order in the pattern.
type Schema []Field

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Bound is a Pattern proven to capture exactly the fields of a Schema. It is
// immutable and safe for concurrent use.
type Bound struct {
	pattern *Pattern
	schema  Schema

	// types[i] is the conversion for section i, nil for literal sections.
	types []convert.Type
	// slot[i] is the schema index of the field captured by section i.
	slot []int
}

// Bind checks that the fields captured by p are exactly the fields declared
// by schema. Unknown captures are reported before unbound schema fields.
func Bind(p *Pattern, schema Schema) (*Bound, error) {
	index := make(map[string]int, len(schema))
	for i, f := range schema {
		if _, dup := index[f.Name]; dup {
			return nil, &BindingError{Kind: ErrDuplicateField, Field: f.Name}
		}
		if f.Type == nil {
			return nil, &BindingError{Kind: ErrUntypedField, Field: f.Name}
		}
		index[f.Name] = i
	}

	b := &Bound{
		pattern: p,
		schema:  append(Schema(nil), schema...),
		types:   make([]convert.Type, len(p.sections)),
		slot:    make([]int, len(p.sections)),
	}

	captured := make(map[string]struct{}, len(schema))
	for i, s := range p.sections {
		if s.Kind == LiteralMatch {
			b.slot[i] = -1
			continue
		}
		j, ok := index[s.Field]
		if !ok {
			return nil, &BindingError{Kind: ErrUnknownField, Field: s.Field}
		}
		b.types[i] = schema[j].Type
		b.slot[i] = j
		captured[s.Field] = struct{}{}
	}

	for _, f := range schema {
		if _, ok := captured[f.Name]; !ok {
			return nil, &BindingError{Kind: ErrUnboundField, Field: f.Name}
		}
	}

	return b, nil
}

// Compile parses src and binds it to schema.
func Compile(src string, schema Schema) (*Bound, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Bind(p, schema)
}

// MustCompile is like Compile but panics on error. It simplifies
// initialization of package-level formats.
func MustCompile(src string, schema Schema) *Bound {
	b, err := Compile(src, schema)
	if err != nil {
		panic("format: Compile(" + src + "): " + err.Error())
	}
	return b
}

// Pattern returns the bound pattern.
func (b *Bound) Pattern() *Pattern {
	return b.pattern
}

// Schema returns a copy of the bound schema.
func (b *Bound) Schema() Schema {
	return append(Schema(nil), b.schema...)
}

// String returns the pattern in specification syntax.
func (b *Bound) String() string {
	return b.pattern.String()
}
