package modal

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Well-known prop names.
const (
	// PropIsOpen is injected and owned by the registry.
	PropIsOpen = "isOpen"

	// PropOnClose is the close request callback (func()). Hosts wrap it so
	// that calling it hides the modal.
	PropOnClose = "onClose"

	// PropOnExited is the exit-completion callback (func()). Components call
	// it when their close transition has finished.
	PropOnExited = "onExited"
)

// Component is an opaque reference to something a host knows how to render.
// The registry never inspects it.
type Component any

// Props are the properties forwarded to a modal component.
type Props map[string]any

// Clone returns a shallow copy of p. A nil Props clones to an empty map.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// IsOpen reports the registry-owned open flag.
func (p Props) IsOpen() bool {
	v, _ := p[PropIsOpen].(bool)
	return v
}

// String returns the string prop at key, or "".
func (p Props) String(key string) string {
	v, _ := p[key].(string)
	return v
}

// Bool returns the bool prop at key, or false.
func (p Props) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// Func returns the func() prop at key, or nil.
func (p Props) Func(key string) func() {
	v, _ := p[key].(func())
	return v
}

// merged returns a copy of p with partial applied on top.
func (p Props) merged(partial Props) Props {
	out := p.Clone()
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Encode converts a props struct (or map with string keys) into Props.
//
// Struct fields are named by their `prop` tag, falling back to the field
// name with a lower-case first letter. A tag of "-" skips the field and the
// omitempty flag skips zero values. Unexported fields are ignored.
func Encode(v any) (Props, error) {
	if v == nil {
		return Props{}, nil
	}
	if p, ok := v.(Props); ok {
		return p.Clone(), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Props{}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("modal: cannot encode %s as props: map key must be string", rv.Type())
		}
		out := make(Props, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil

	case reflect.Struct:
		out := make(Props)
		for _, f := range structFields(rv.Type()) {
			fv := rv.Field(f.index)
			if f.omitEmpty && fv.IsZero() {
				continue
			}
			out[f.name] = fv.Interface()
		}
		return out, nil

	default:
		return nil, fmt.Errorf("modal: cannot encode %s as props", rv.Type())
	}
}

// Decode fills a props struct of type P from p.
// Values are assigned when assignable and converted between numeric kinds;
// anything else is an error. Missing keys leave the zero value.
func Decode[P any](p Props) (P, error) {
	var out P
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out, fmt.Errorf("modal: cannot decode props into %s", rv.Type())
	}

	for _, f := range structFields(rv.Type()) {
		raw, ok := p[f.name]
		if !ok || raw == nil {
			continue
		}
		fv := rv.Field(f.index)
		val := reflect.ValueOf(raw)
		switch {
		case val.Type().AssignableTo(fv.Type()):
			fv.Set(val)
		case isNumeric(val.Kind()) && isNumeric(fv.Kind()):
			fv.Set(val.Convert(fv.Type()))
		default:
			return out, fmt.Errorf("modal: prop %q: cannot assign %T to %s", f.name, raw, fv.Type())
		}
	}
	return out, nil
}

type propField struct {
	index     int
	name      string
	omitEmpty bool
}

func structFields(t reflect.Type) []propField {
	fields := make([]propField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("prop"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = lowerFirst(sf.Name)
		}
		fields = append(fields, propField{
			index:     i,
			name:      name,
			omitEmpty: opts == "omitempty",
		})
	}
	return fields
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
