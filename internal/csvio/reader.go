// Package csvio reads submission CSV files into the header row and records
// the rule engine consumes. It owns everything the engine does not care
// about: byte-order marks from Excel exports, delimiter/quoting quirks, and
// per-row parse failures, which surface as skippable row errors instead of
// aborting the file.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

// Row is one data row as read from the file. Err is set when the row could
// not be parsed; Record is nil in that case.
type Row struct {
	Record validate.Record
	Err    error
}

// File is a fully read CSV file.
type File struct {
	Name   string
	Header []string
	Rows   []Row
}

// ReadFile reads and parses a CSV file from disk.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	file, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file.Name = path
	return file, nil
}

// Read parses CSV data from r. The header row is required; a file without
// one is unreadable. Data rows with a different field count than the header
// are tolerated (missing cells are simply absent from the record, extras
// are dropped), matching how spreadsheet exports pad and truncate rows.
func Read(r io.Reader) (*File, error) {
	cr := csv.NewReader(newSanitizingReader(newBOMSkippingReader(r)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, fmt.Errorf("read header row: %w", err)
	}

	file := &File{Header: append([]string(nil), header...)}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// encoding/csv keeps reading after a ParseError; record the
			// broken row so the report can account for it.
			file.Rows = append(file.Rows, Row{Err: err})
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("read rows: %w", err)
			}
			continue
		}

		rec := make(validate.Record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			}
		}
		file.Rows = append(file.Rows, Row{Record: rec})
	}

	return file, nil
}

// bomSkippingReader strips a UTF-8 byte-order mark from the start of the
// stream. Excel on Windows writes one; encoding/csv would otherwise treat
// it as part of the first column name.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
	pending []byte
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, len(utf8BOM))
		n, err := io.ReadFull(b.reader, head)
		head = head[:n]
		if n == len(utf8BOM) && head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
			head = head[:0]
		}
		b.pending = head
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return 0, err
		}
	}

	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}

	return b.reader.Read(p)
}
