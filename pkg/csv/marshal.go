package csv

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Marshal returns the CSV encoding of v.
//
// Two source shapes are supported:
//
// 1. [][]string writes the raw records:
//
//	data, err := csv.Marshal([][]string{{"name", "age"}, {"Alice", "30"}})
//
// 2. A slice of structs writes a header row built from the struct's
// fields followed by one record per element:
//
//	type Person struct {
//	    Name string `csv:"name"`
//	    Age  int    `csv:"age"`
//	}
//	data, err := csv.Marshal([]Person{{"Alice", 30}})
//	// data: "name,age\nAlice,30\n"
//
// Columns appear in field declaration order and take their names from
// the csv tag, or the field name when there is no tag, using the same
// tag format Unmarshal reads:
//
//	Field int `csv:"column_name"` // column "column_name"
//	Field int `csv:"-"`           // never write this field
//	Field int `csv:",omitempty"`  // write the zero value as an empty cell
//
// Supported field types are string, int, uint, and float variants,
// bool, and pointers to any of those, which encode nil as an empty
// cell. With a slice of struct pointers, nil elements are skipped.
// Fields containing the delimiter, quotes, or line breaks come out
// quoted, so Marshal output always survives a round trip through
// Unmarshal.
//
// Marshal always writes with the default dialect. Use NewDialectWriter
// plus EncodeAll to encode with a custom dialect.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.encodeAll(v, "Marshal"); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeAll writes v, which must be a [][]string or a slice of structs,
// through the writer's delimiter and quoting configuration. Struct
// sources emit a header row first. Call Flush after the last write.
func (w *Writer) EncodeAll(v any) error {
	return w.encodeAll(v, "EncodeAll")
}

func (w *Writer) encodeAll(v any, op string) error {
	if records, ok := v.([][]string); ok {
		return w.WriteAll(records)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return errors.New("csv: " + op + "(nil)")
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errors.New("csv: " + op + "(nil " + rv.Type().String() + ")")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return errors.New("csv: " + op + " expects [][]string or a slice of structs, got " + rv.Type().String())
	}

	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Slice && elemType.Elem().Kind() == reflect.String {
		return w.encodeRaw(rv)
	}
	structType := elemType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return errors.New("csv: " + op + " expects [][]string or a slice of structs, got " + rv.Type().String())
	}

	cols, err := structColumns(structType)
	if err != nil {
		return err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	if err := w.Write(names); err != nil {
		return err
	}

	fields := make([]string, len(cols))
	for i := 0; i < rv.Len(); i++ {
		ev := rv.Index(i)
		if ev.Kind() == reflect.Ptr {
			if ev.IsNil() {
				continue
			}
			ev = ev.Elem()
		}
		for j, c := range cols {
			fields[j] = c.format(ev.Field(c.field))
		}
		if err := w.Write(fields); err != nil {
			return err
		}
	}
	return nil
}

// encodeRaw writes a named [][]string type row by row.
func (w *Writer) encodeRaw(rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		row := rv.Index(i)
		fields := make([]string, row.Len())
		for j := range fields {
			fields[j] = row.Index(j).String()
		}
		if err := w.Write(fields); err != nil {
			return err
		}
	}
	return nil
}

// marshalColumn maps one struct field to one output column.
type marshalColumn struct {
	name   string
	field  int
	format func(reflect.Value) string
}

// structColumns builds the column plan for a struct type, in field
// declaration order, honoring csv tags.
func structColumns(t reflect.Type) ([]marshalColumn, error) {
	var cols []marshalColumn
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name := f.Name
		omitempty := false
		if tag, ok := f.Tag.Lookup("csv"); ok {
			if tag == "-" {
				continue
			}
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				omitempty = tagHasOption(tag[idx+1:], "omitempty")
				tag = tag[:idx]
			}
			if tag != "" {
				name = tag
			}
		}
		format := formatterFor(f.Type)
		if format == nil {
			return nil, fmt.Errorf("csv: unsupported field type %s", f.Type)
		}
		if omitempty {
			inner := format
			format = func(v reflect.Value) string {
				if v.IsZero() {
					return ""
				}
				return inner(v)
			}
		}
		cols = append(cols, marshalColumn{name: name, field: i, format: format})
	}
	return cols, nil
}

// tagHasOption reports whether the comma-separated option list contains
// name.
func tagHasOption(opts, name string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == name {
			return true
		}
	}
	return false
}

// formatterFor returns a string conversion for the given field type, or
// nil when the type cannot be marshaled.
func formatterFor(t reflect.Type) func(reflect.Value) string {
	switch t.Kind() {
	case reflect.Ptr:
		inner := formatterFor(t.Elem())
		if inner == nil {
			return nil
		}
		return func(v reflect.Value) string {
			if v.IsNil() {
				return ""
			}
			return inner(v.Elem())
		}

	case reflect.String:
		return func(v reflect.Value) string { return v.String() }

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v reflect.Value) string { return strconv.FormatInt(v.Int(), 10) }

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v reflect.Value) string { return strconv.FormatUint(v.Uint(), 10) }

	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		return func(v reflect.Value) string { return strconv.FormatFloat(v.Float(), 'g', -1, bits) }

	case reflect.Bool:
		return func(v reflect.Value) string { return strconv.FormatBool(v.Bool()) }

	default:
		return nil
	}
}
