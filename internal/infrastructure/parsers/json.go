package parsers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONParser parses documents and catalogs from JSON.
type JSONParser struct{}

// Parse reads a material document object.
func (p *JSONParser) Parse(r io.Reader) (RawDocument, error) {
	var doc RawDocument
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing JSON: document is null")
	}

	return doc, nil
}

// IsRegionDocument reports whether data is an object with a regions key.
func (p *JSONParser) IsRegionDocument(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top[RegionsKey]
	return ok
}

// ParseRegions reads a region-keyed document.
func (p *JSONParser) ParseRegions(r io.Reader) ([]RawRegion, error) {
	var doc struct {
		Regions []RawRegion `json:"regions"`
	}
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	return doc.Regions, nil
}

// ParseCatalog reads an array of catalog rows.
func (p *JSONParser) ParseCatalog(r io.Reader) ([]RawHandle, error) {
	var rows []RawHandle
	if err := decodeJSON(r, &rows); err != nil {
		return nil, err
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range rows {
		rows[i].LineNum = i + 1
	}

	return rows, nil
}

// decodeJSON decodes exactly one value; anything but whitespace after it is
// an error.
func decodeJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing JSON: unexpected data after document")
	}
	return nil
}
