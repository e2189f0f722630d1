package csv_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Fati1996i/commons-csv/pkg/csv"
)

func TestReadAll(t *testing.T) {
	records, err := csv.ReadAll(strings.NewReader("a,b\nc,d\n"), csv.DefaultDialect())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if got := fieldsOf(records); !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAll() = %v, want %v", got, want)
	}
}

func TestReadAllString(t *testing.T) {
	records, err := csv.ReadAllString("a,b\nc,d", csv.DefaultDialect())
	if err != nil {
		t.Fatalf("ReadAllString() error = %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if got := fieldsOf(records); !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAllString() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "valid",
			input: "a,b\nc,d\n",
		},
		{
			name:  "valid with quotes",
			input: "\"a,x\",b\n",
		},
		{
			name:  "empty",
			input: "",
		},
		{
			name:    "bare quote",
			input:   "a\"b,c\n",
			wantErr: csv.ErrBareQuote,
		},
		{
			name:    "unterminated quote",
			input:   "\"abc\n",
			wantErr: csv.ErrUnterminatedQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := csv.Validate(tt.input, csv.DefaultDialect())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FieldCount(t *testing.T) {
	d := csv.DefaultDialect()
	d.EnforceFieldCount = true

	if err := csv.Validate("a,b\nc\n", d); !errors.Is(err, csv.ErrFieldCount) {
		t.Errorf("Validate() = %v, want field count violation", err)
	}
	if err := csv.Validate("a,b\nc,d\n", d); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_InvalidDialect(t *testing.T) {
	d := csv.DefaultDialect()
	d.Comma = '\n'

	var dErr *csv.DialectError
	if err := csv.Validate("a,b\n", d); !errors.As(err, &dErr) {
		t.Errorf("Validate() = %v, want DialectError", err)
	}
}
