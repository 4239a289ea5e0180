// Package entities contains core domain data structures.
package entities

import "fmt"

// ResourceRef identifies a resource inside an external content archive.
type ResourceRef struct {
	Archive int `json:"archive" yaml:"archive"`
	Record  int `json:"record" yaml:"record"`
	Frame   int `json:"frame" yaml:"frame"`
}

// Ref is shorthand for building a ResourceRef.
func Ref(archive, record, frame int) ResourceRef {
	return ResourceRef{Archive: archive, Record: record, Frame: frame}
}

// IsValid reports whether every field is non-negative.
func (r ResourceRef) IsValid() bool {
	return r.Archive >= 0 && r.Record >= 0 && r.Frame >= 0
}

// String formats the ref as archive/record/frame.
func (r ResourceRef) String() string {
	return fmt.Sprintf("%d/%d/%d", r.Archive, r.Record, r.Frame)
}

// Handle is a concrete resource obtained from an archive for a ResourceRef.
type Handle struct {
	Ref ResourceRef `json:"ref"`
	// Location is backend specific: a file path, an asset key or a URL.
	Location    string `json:"location"`
	Placeholder bool   `json:"placeholder,omitempty"`
}
