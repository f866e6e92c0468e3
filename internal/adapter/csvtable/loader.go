// Package csvtable loads CSV files of query locations into named float
// columns.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
)

// LoadTable reads a CSV file with a header row into named float columns.
// Every cell must parse as a number; column names are trimmed of surrounding
// whitespace.
func LoadTable(path string) (domain.Table, error) {
	//nolint:gosec // G304: File path comes from the caller's own flags.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return ReadTable(file)
}

// ReadTable parses CSV location data from any reader.
func ReadTable(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	table := make(domain.Table, len(header))
	for _, col := range header {
		table[col] = []float64{}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("invalid CSV record: expected %d columns, got %d", len(header), len(record))
		}

		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid value %q: %w", header[i], field, err)
			}
			table[header[i]] = append(table[header[i]], v)
		}
	}

	return table, nil
}
