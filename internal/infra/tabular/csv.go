package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes RFC 4180 text. A leading UTF-8 byte order mark, as written
// by spreadsheet tools, is ignored and ragged rows are tolerated.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := bufio.NewReader(r)
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	return fromRecords(records), nil
}

// WriteCSV encodes the table with a header row in column order.
func WriteCSV(w io.Writer, t *Table) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(t.records()); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}

	return nil
}
