// Package tabular reads and writes header-keyed tables as CSV or XLSX.
package tabular

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for formats other than csv and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Format is a file format for tables.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat resolves an explicit format name, falling back to the
// extension of fileName when name is empty.
func ParseFormat(name, fileName string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	}
	if name == "" {
		return CSV, nil
	}

	switch Format(name) {
	case CSV, XLSX:
		return Format(name), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// Extension is the file extension of the format, without dot.
func (f Format) Extension() string {
	return string(f)
}

// Table is a header row followed by rows keyed by header.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// NewTable returns an empty table with the given column order.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Append adds a row given in header order. Missing trailing values are empty.
func (t *Table) Append(values ...string) {
	row := make(map[string]string, len(t.Headers))
	for i, h := range t.Headers {
		if i < len(values) {
			row[h] = values[i]
		} else {
			row[h] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Read decodes a table in the given format.
func Read(r io.Reader, f Format) (*Table, error) {
	switch f {
	case CSV:
		return ReadCSV(r)
	case XLSX:
		return ReadXLSX(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", f)
	}
}

// Write encodes a table in the given format.
func Write(w io.Writer, f Format, t *Table) error {
	switch f {
	case CSV:
		return WriteCSV(w, t)
	case XLSX:
		return WriteXLSX(w, t)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", f)
	}
}

// fromRecords builds a table from raw records. The first non-blank record is
// the header; blank records are dropped and short records padded.
func fromRecords(records [][]string) *Table {
	table := &Table{}
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		if table.Headers == nil {
			table.Headers = make([]string, len(record))
			for i, h := range record {
				table.Headers[i] = strings.TrimSpace(h)
			}
			continue
		}

		row := make(map[string]string, len(table.Headers))
		for i, h := range table.Headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// records renders the table as header plus data records.
func (t *Table) records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Headers)
	for _, row := range t.Rows {
		record := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			record[i] = row[h]
		}
		out = append(out, record)
	}

	return out
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
