// Package csvio writes and reads the timestamped CSV artifacts that bridge
// pipeline stages (spec §6). Every artifact is UTF-8, comma-separated, with
// a header row; numeric fields serialize as plain integers/floats when
// present and blank otherwise.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TimestampFormat is the filename timestamp suffix spec §6 requires.
const TimestampFormat = "20060102_150405"

// Timestamp renders t in the artifact filename format.
func Timestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ArtifactPath builds `<dir>/<base>_<ts>.csv`.
func ArtifactPath(dir, base, ts string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, ts))
}

// Column is one output field of a struct-row CSV: a header name and a
// projection from the row type to its string representation.
type Column[T any] struct {
	Name  string
	Value func(T) string
}

// WriteStructs writes rows to path as a header row plus one row per item,
// creating parent directories as needed. An empty rows slice still writes
// the header, per spec §7's "always write artifacts for data already
// produced" behavior.
func WriteStructs[T any](path string, rows []T, columns []Column[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = c.Value(row)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteRecords writes a plain header + row-of-strings CSV, for artifacts
// (summaries, statistics) that are naturally maps rather than one struct
// per row.
func WriteRecords(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ReadRecords reads a CSV file into its header and row-of-strings records.
func ReadRecords(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

// ReadMaps reads a CSV file into one map[header]value per row, for callers
// that want field access by name rather than by position.
func ReadMaps(path string) ([]map[string]string, error) {
	header, rows, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// IntOrBlank renders *int as a plain integer, or "" when nil - the spec §6
// numeric-field serialization rule.
func IntOrBlank(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FloatOrBlank renders *float64 to prec decimal places, or "" when nil.
func FloatOrBlank(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

// Float renders a plain float64 to prec decimal places.
func Float(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// ParseIntOrBlank parses an int field that may be blank (nil on empty or
// unparseable input, matching the reload side of the CSV round-trip).
func ParseIntOrBlank(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
