package csv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshal parses the CSV-encoded data and stores the result in the
// value pointed to by v.
//
// Two target shapes are supported:
//
// 1. *[][]string receives the raw records:
//
//	var records [][]string
//	err := csv.Unmarshal(data, &records)
//	// records[0] is the first row of the input
//
// 2. A pointer to a slice of structs maps columns to fields, with the
// first row of the input read as the header:
//
//	type Person struct {
//	    Name string `csv:"name"`
//	    Age  int    `csv:"age"`
//	}
//	var people []Person
//	err := csv.Unmarshal(data, &people)
//
// Column binding matches the csv tag name, or the field name when there
// is no tag, case-insensitively. Only exported fields are set. The tag
// format is:
//
//	Field int `csv:"column_name"` // bind to column "column_name"
//	Field int `csv:"-"`           // never bind this field
//	Field int                     // bind by field name
//
// Supported field types are string, int, uint, and float variants, bool
// (anything strconv.ParseBool accepts), and pointers to any of those,
// which decode empty values as nil. Unbound columns are ignored; unbound
// fields keep their zero values; empty values leave non-pointer fields
// at their zero values.
//
// Unmarshal always reads the whole input with the default dialect. Use
// NewParser plus DecodeAll to decode with a custom dialect.
func Unmarshal(data []byte, v any) error {
	elem, elemType, err := unmarshalTarget(v, "Unmarshal")
	if err != nil {
		return err
	}
	d := DefaultDialect()
	if elemType.Kind() == reflect.Struct {
		d.Header = HeaderFromFirstRecord
		d.SkipHeaderRecord = true
	}
	p, err := NewParser(bytes.NewReader(data), d)
	if err != nil {
		return err
	}
	return p.decodeAll(elem, elemType)
}

// DecodeAll decodes the session's remaining records into v, which must
// be a *[][]string or a pointer to a slice of structs. Struct decoding
// binds columns through the session's header, so the dialect must
// resolve one. Any read error aborts decoding, field count violations
// included.
func (p *Parser) DecodeAll(v any) error {
	elem, elemType, err := unmarshalTarget(v, "DecodeAll")
	if err != nil {
		return err
	}
	return p.decodeAll(elem, elemType)
}

// unmarshalTarget validates a decoding target and returns the slice to
// fill and its element type.
func unmarshalTarget(v any, op string) (reflect.Value, reflect.Type, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, nil, errors.New("csv: " + op + "(nil)")
	}
	if rv.Kind() != reflect.Ptr {
		return reflect.Value{}, nil, errors.New("csv: " + op + "(non-pointer " + rv.Type().String() + ")")
	}
	if rv.IsNil() {
		return reflect.Value{}, nil, errors.New("csv: " + op + "(nil " + rv.Type().String() + ")")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Slice {
		return reflect.Value{}, nil, errors.New("csv: " + op + " expects pointer to slice, got " + elem.Type().String())
	}
	t := elem.Type().Elem()
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String {
		return elem, t, nil
	}
	if t.Kind() != reflect.Struct {
		return reflect.Value{}, nil, errors.New("csv: " + op + " expects *[][]string or pointer to slice of structs, got slice of " + t.String())
	}
	return elem, t, nil
}

// decodeAll drains the session into the validated target.
func (p *Parser) decodeAll(elem reflect.Value, elemType reflect.Type) error {
	if elemType.Kind() != reflect.Struct {
		return p.decodeRaw(elem, elemType)
	}

	if p.header.Len() == 0 {
		if p.dialect.Header == HeaderNone {
			return errors.New("csv: struct decoding requires a dialect with headers")
		}
		// Header mode set but the input was empty.
		elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
		return nil
	}

	bindings := structBindings(elemType, p.header)
	out := reflect.MakeSlice(elem.Type(), 0, 16)
	for {
		rec, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if rec.IsComment() || rec.IsHeader() {
			continue
		}
		sv := reflect.New(elemType).Elem()
		for _, b := range bindings {
			value, ok := rec.Get(b.col)
			if !ok {
				continue
			}
			if err := b.set(sv.Field(b.field), value); err != nil {
				return fmt.Errorf("csv: record %d, column %d: %w", rec.Number(), b.col, err)
			}
		}
		out = reflect.Append(out, sv)
	}
	elem.Set(out)
	return nil
}

// decodeRaw drains the session into a slice of string slices. Comment
// records are skipped; a re-emitted header row is a real row and stays.
func (p *Parser) decodeRaw(elem reflect.Value, rowType reflect.Type) error {
	out := reflect.MakeSlice(elem.Type(), 0, 16)
	for {
		rec, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if rec.IsComment() {
			continue
		}
		row := reflect.MakeSlice(rowType, rec.Len(), rec.Len())
		for i, f := range rec.fields {
			row.Index(i).SetString(f)
		}
		out = reflect.Append(out, row)
	}
	elem.Set(out)
	return nil
}

// binding connects one header column to one struct field.
type binding struct {
	col   int
	field int
	set   func(reflect.Value, string) error
}

// structBindings matches header names against struct fields,
// case-insensitively, honoring csv tags.
func structBindings(t reflect.Type, h *Header) []binding {
	byName := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("csv"); ok {
			if tag == "-" {
				continue
			}
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" {
				name = tag
			}
		}
		byName[strings.ToLower(name)] = i
	}

	var bindings []binding
	for col, header := range h.names {
		fieldIdx, ok := byName[strings.ToLower(strings.TrimSpace(header))]
		if !ok {
			continue
		}
		bindings = append(bindings, binding{
			col:   col,
			field: fieldIdx,
			set:   setterFor(t.Field(fieldIdx).Type),
		})
	}
	return bindings
}

// setterFor returns a conversion function for the given field type.
// Unsupported types get a setter that fails on first use, so the error
// points at a concrete record and column.
func setterFor(t reflect.Type) func(reflect.Value, string) error {
	switch t.Kind() {
	case reflect.Ptr:
		inner := setterFor(t.Elem())
		return func(f reflect.Value, v string) error {
			if v == "" {
				f.Set(reflect.Zero(t))
				return nil
			}
			ptr := reflect.New(t.Elem())
			if err := inner(ptr.Elem(), v); err != nil {
				return err
			}
			f.Set(ptr)
			return nil
		}

	case reflect.String:
		return func(f reflect.Value, v string) error {
			f.SetString(v)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(f reflect.Value, v string) error {
			if v == "" {
				return nil
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || f.OverflowInt(n) {
				return fmt.Errorf("cannot parse %q as %s", v, t)
			}
			f.SetInt(n)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(f reflect.Value, v string) error {
			if v == "" {
				return nil
			}
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil || f.OverflowUint(n) {
				return fmt.Errorf("cannot parse %q as %s", v, t)
			}
			f.SetUint(n)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(f reflect.Value, v string) error {
			if v == "" {
				return nil
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || f.OverflowFloat(n) {
				return fmt.Errorf("cannot parse %q as %s", v, t)
			}
			f.SetFloat(n)
			return nil
		}

	case reflect.Bool:
		return func(f reflect.Value, v string) error {
			if v == "" {
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("cannot parse %q as bool", v)
			}
			f.SetBool(b)
			return nil
		}

	default:
		return func(_ reflect.Value, _ string) error {
			return fmt.Errorf("unsupported field type %s", t)
		}
	}
}
