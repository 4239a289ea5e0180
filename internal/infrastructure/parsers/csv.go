package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses archive catalogs from CSV.
type CSVParser struct{}

// ParseCatalog reads CSV from the reader and returns catalog rows.
// Expected columns: archive, record, frame, location
func (p *CSVParser) ParseCatalog(r io.Reader) ([]RawHandle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	requiredCols := []string{"archive", "record", "frame", "location"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawHandles.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawHandle, error) {
	var rows []RawHandle
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		row, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseRecord converts a CSV record to a RawHandle.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawHandle, error) {
	row := RawHandle{
		Location: getColumn(record, colIndex, "location"),
		LineNum:  lineNum,
	}

	fields := []struct {
		col string
		dst *int
	}{
		{"archive", &row.Archive},
		{"record", &row.Record},
		{"frame", &row.Frame},
	}
	for _, f := range fields {
		raw := getColumn(record, colIndex, f.col)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return RawHandle{}, fmt.Errorf("line %d: invalid %s value %q: %w", lineNum, f.col, raw, err)
		}
		*f.dst = v
	}

	return row, nil
}

// getColumn safely retrieves a trimmed column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
