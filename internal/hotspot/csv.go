package hotspot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoHeader reports an empty CSV stream.
var ErrNoHeader = errors.New("csv header row missing")

// ReadCSV reads a header-prefixed CSV stream into records keyed by the
// lower-cased header names. Rows whose field count does not match the header
// are skipped rather than failing the whole read.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return records, fmt.Errorf("read csv: %w", err)
		}
		if len(row) != len(header) {
			continue
		}
		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile reads and decodes a hotspot CSV file. skipped counts records that
// could not be decoded.
func ReadFile(path string) (hotspots []Hotspot, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open hotspots: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	hotspots, skipped = Decode(records)
	return hotspots, skipped, nil
}
