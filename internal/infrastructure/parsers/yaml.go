package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses material documents written as YAML.
type YAMLParser struct{}

// Parse reads a material document mapping.
func (p *YAMLParser) Parse(r io.Reader) (RawDocument, error) {
	var doc RawDocument
	if err := decodeYAML(r, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("parsing YAML: document is null")
	}

	return doc, nil
}

// IsRegionDocument reports whether data is a mapping with a regions key.
func (p *YAMLParser) IsRegionDocument(data []byte) bool {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top[RegionsKey]
	return ok
}

// ParseRegions reads a region-keyed document.
func (p *YAMLParser) ParseRegions(r io.Reader) ([]RawRegion, error) {
	var doc struct {
		Regions []RawRegion `yaml:"regions"`
	}
	if err := decodeYAML(r, &doc); err != nil {
		return nil, err
	}
	return doc.Regions, nil
}

func decodeYAML(r io.Reader, v any) error {
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML: document is empty")
		}
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}
