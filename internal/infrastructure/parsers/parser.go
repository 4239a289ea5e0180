// Package parsers decodes material documents and archive catalogs.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// RawDocument is a decoded material document keyed by the authored category
// names. Keys are not validated here.
type RawDocument map[string]entities.SeasonalSet

// DocumentParser decodes a material document.
type DocumentParser interface {
	Parse(r io.Reader) (RawDocument, error)
}

// RegionsKey is the top-level key that marks a region-keyed document.
const RegionsKey = "regions"

// RawRegion is one entry of a region-keyed document.
type RawRegion struct {
	RegionName  string                 `json:"regionName" yaml:"regionName"`
	DefaultRefs []entities.ResourceRef `json:"defaultMaterials" yaml:"defaultMaterials"`
	WinterRefs  []entities.ResourceRef `json:"winterMaterials" yaml:"winterMaterials"`
}

// RegionParser decodes documents keyed by region name rather than climate.
type RegionParser interface {
	// IsRegionDocument reports whether data carries a top-level RegionsKey.
	IsRegionDocument(data []byte) bool
	ParseRegions(r io.Reader) ([]RawRegion, error)
}

// RawHandle is one archive catalog row before validation.
type RawHandle struct {
	Archive  int    `json:"archive" yaml:"archive"`
	Record   int    `json:"record" yaml:"record"`
	Frame    int    `json:"frame" yaml:"frame"`
	Location string `json:"location" yaml:"location"`
	LineNum  int    `json:"-" yaml:"-"` // Line number in source file (set by parser)
}

// CatalogParser decodes archive catalog rows.
type CatalogParser interface {
	ParseCatalog(r io.Reader) ([]RawHandle, error)
}

// ForFile returns the document parser for a file name's extension.
func ForFile(filename string) DocumentParser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONParser{}
	case ".yaml", ".yml":
		return &YAMLParser{}
	default:
		return nil
	}
}

// CatalogForFile returns the catalog parser for a file name's extension.
// Supported formats: json, csv.
func CatalogForFile(filename string) CatalogParser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
