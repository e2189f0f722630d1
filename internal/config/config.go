// Package config loads parser dialects from YAML files.
//
// A dialect file describes the same knobs as csv.Dialect using plain
// strings, so the CLI and scripts can share parsing profiles:
//
//	delimiter: ";"
//	quote: "\""
//	comment: "#"
//	header: first-record
//	skip_header_record: true
//	duplicate_headers: allow-empty
//	trim: true
//	null_string: "NULL"
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/Fati1996i/commons-csv/pkg/csv"
)

// File is the YAML representation of a dialect. Zero values mean
// "keep the default"; pointers distinguish absent booleans from false.
type File struct {
	Delimiter        string   `yaml:"delimiter"`
	Quote            *string  `yaml:"quote"`
	Escape           string   `yaml:"escape"`
	Comment          string   `yaml:"comment"`
	Header           string   `yaml:"header"`
	HeaderNames      []string `yaml:"header_names"`
	SkipHeaderRecord *bool    `yaml:"skip_header_record"`
	DuplicateHeaders string   `yaml:"duplicate_headers"`
	IgnoreEmptyLines *bool    `yaml:"ignore_empty_lines"`
	EnforceFieldCnt  *bool    `yaml:"enforce_field_count"`
	Trim             *bool    `yaml:"trim"`
	NullString       string   `yaml:"null_string"`
	KeepComments     *bool    `yaml:"keep_comments"`
}

// Load reads a dialect file and resolves it against the default dialect.
func Load(path string) (csv.Dialect, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return csv.Dialect{}, fmt.Errorf("read file: %w", err)
	}
	return Parse(content)
}

// Parse resolves YAML content into a validated dialect.
func Parse(content []byte) (csv.Dialect, error) {
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return csv.Dialect{}, fmt.Errorf("parse YAML: %w", err)
	}
	return f.Dialect()
}

// Dialect converts the file representation into a csv.Dialect,
// starting from csv.DefaultDialect and validating the result.
func (f *File) Dialect() (csv.Dialect, error) {
	d := csv.DefaultDialect()

	var err error
	if d.Comma, err = resolveRune("delimiter", f.Delimiter, d.Comma); err != nil {
		return csv.Dialect{}, err
	}
	if f.Quote != nil {
		// An explicit empty quote disables quoting entirely.
		if *f.Quote == "" {
			d.Quote = 0
		} else if d.Quote, err = resolveRune("quote", *f.Quote, d.Quote); err != nil {
			return csv.Dialect{}, err
		}
	}
	if d.Escape, err = resolveRune("escape", f.Escape, d.Escape); err != nil {
		return csv.Dialect{}, err
	}
	if d.Comment, err = resolveRune("comment", f.Comment, d.Comment); err != nil {
		return csv.Dialect{}, err
	}

	switch f.Header {
	case "", "none":
		d.Header = csv.HeaderNone
	case "explicit":
		d.Header = csv.HeaderExplicit
	case "first-record":
		d.Header = csv.HeaderFromFirstRecord
	default:
		return csv.Dialect{}, fmt.Errorf("header: unknown mode %q (want none, explicit or first-record)", f.Header)
	}
	d.HeaderNames = f.HeaderNames
	if f.SkipHeaderRecord != nil {
		d.SkipHeaderRecord = *f.SkipHeaderRecord
	} else if d.Header == csv.HeaderFromFirstRecord {
		d.SkipHeaderRecord = true
	}

	switch f.DuplicateHeaders {
	case "", "disallow":
		d.DuplicateHeaders = csv.DuplicatesDisallow
	case "allow-all":
		d.DuplicateHeaders = csv.DuplicatesAllowAll
	case "allow-empty":
		d.DuplicateHeaders = csv.DuplicatesAllowEmpty
	default:
		return csv.Dialect{}, fmt.Errorf("duplicate_headers: unknown mode %q (want disallow, allow-all or allow-empty)", f.DuplicateHeaders)
	}

	if f.IgnoreEmptyLines != nil {
		d.IgnoreEmptyLines = *f.IgnoreEmptyLines
	}
	if f.EnforceFieldCnt != nil {
		d.EnforceFieldCount = *f.EnforceFieldCnt
	}
	if f.Trim != nil {
		d.Trim = *f.Trim
	}
	d.NullString = f.NullString
	if f.KeepComments != nil {
		d.KeepComments = *f.KeepComments
	}

	if err := d.Validate(); err != nil {
		return csv.Dialect{}, err
	}
	return d, nil
}

// resolveRune maps a single-rune YAML string onto a dialect rune.
// Empty input keeps the fallback; "none" clears it.
func resolveRune(field, value string, fallback rune) (rune, error) {
	switch value {
	case "":
		return fallback, nil
	case "none":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("%s: want a single character, got %q", field, value)
	}
	return r, nil
}
