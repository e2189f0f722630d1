package csv_test

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/Fati1996i/commons-csv/pkg/csv"
)

// benchInput builds a synthetic employee table with the given number of
// data rows.
func benchInput(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,first_name,last_name,email,department,salary,active\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,FirstName%d,LastName%d,user%d@example.com,Department%d,%.2f,%t\n",
			i+1, i, i, i, i%10, 50000.0+float64(i)*100, i%2 == 0)
	}
	return sb.String()
}

// quotedBenchInput builds rows that exercise the quoted-field path.
func quotedBenchInput(rows int) string {
	var sb strings.Builder
	sb.WriteString("name,description,notes\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "\"User %d\",\"Description with, comma and \"\"quotes\"\"\",\"Multi\nline\nnotes\"\n", i)
	}
	return sb.String()
}

func benchReadAll(b *testing.B, input string) {
	b.Helper()
	d := csv.DefaultDialect()
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		records, err := csv.ReadAllString(input, d)
		if err != nil {
			b.Fatal(err)
		}
		_ = records
	}
}

func BenchmarkParser_ReadAll_Small(b *testing.B) {
	benchReadAll(b, benchInput(100))
}

func BenchmarkParser_ReadAll_Medium(b *testing.B) {
	benchReadAll(b, benchInput(1000))
}

func BenchmarkParser_ReadAll_Large(b *testing.B) {
	benchReadAll(b, benchInput(10000))
}

// BenchmarkEncodingCSV_ReadAll_Large is the stdlib baseline for
// BenchmarkParser_ReadAll_Large.
func BenchmarkEncodingCSV_ReadAll_Large(b *testing.B) {
	input := benchInput(10000)
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		records, err := stdcsv.NewReader(strings.NewReader(input)).ReadAll()
		if err != nil {
			b.Fatal(err)
		}
		_ = records
	}
}

func BenchmarkParser_QuotedFields(b *testing.B) {
	benchReadAll(b, quotedBenchInput(100))
}

func BenchmarkEncodingCSV_QuotedFields(b *testing.B) {
	input := quotedBenchInput(100)
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		records, err := stdcsv.NewReader(strings.NewReader(input)).ReadAll()
		if err != nil {
			b.Fatal(err)
		}
		_ = records
	}
}

// BenchmarkParser_WithHeaders measures header resolution plus ByName
// access on every record.
func BenchmarkParser_WithHeaders(b *testing.B) {
	input := benchInput(1000)
	d := csv.DefaultDialect()
	d.Header = csv.HeaderFromFirstRecord
	d.SkipHeaderRecord = true

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := csv.ParseString(input, d)
		if err != nil {
			b.Fatal(err)
		}
		for {
			rec, err := p.Read()
			if err != nil {
				break
			}
			_, _ = rec.ByName("email")
		}
		p.Close()
	}
}

// BenchmarkParser_ByteTracking measures the cost of the byte offset
// counters checkpointing needs.
func BenchmarkParser_ByteTracking(b *testing.B) {
	input := benchInput(1000)
	d := csv.DefaultDialect()

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := csv.ParseString(input, d, csv.WithByteTracking())
		if err != nil {
			b.Fatal(err)
		}
		if _, err := p.ReadAll(); err != nil {
			b.Fatal(err)
		}
		p.Close()
	}
}

func BenchmarkScanner_Large(b *testing.B) {
	input := benchInput(10000)
	d := csv.DefaultDialect()
	d.Header = csv.HeaderFromFirstRecord
	d.SkipHeaderRecord = true

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc, err := csv.NewScanner(strings.NewReader(input), d)
		if err != nil {
			b.Fatal(err)
		}
		for sc.Scan() {
			_ = sc.Record()
		}
		if err := sc.Err(); err != nil {
			b.Fatal(err)
		}
		sc.Close()
	}
}

func BenchmarkUnmarshal_Structs(b *testing.B) {
	type employee struct {
		ID         int     `csv:"id"`
		FirstName  string  `csv:"first_name"`
		LastName   string  `csv:"last_name"`
		Email      string  `csv:"email"`
		Department string  `csv:"department"`
		Salary     float64 `csv:"salary"`
		Active     bool    `csv:"active"`
	}

	data := []byte(benchInput(1000))
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out []employee
		if err := csv.Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
		_ = out
	}
}

func BenchmarkWriter_WriteAll(b *testing.B) {
	rows := make([][]string, 1000)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("User%d", i),
			fmt.Sprintf("user%d@example.com", i),
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			b.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			b.Fatal(err)
		}
		_ = buf.Bytes()
	}
}

func BenchmarkEncodingCSV_WriteAll(b *testing.B) {
	rows := make([][]string, 1000)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("User%d", i),
			fmt.Sprintf("user%d@example.com", i),
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		w := stdcsv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			b.Fatal(err)
		}
		_ = buf.Bytes()
	}
}
