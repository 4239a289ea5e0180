package entities

import (
	"errors"
	"fmt"
)

// Sentinels for the soft error taxonomy. None of them abort an operation.
var (
	ErrConfigLoad     = errors.New("configuration load failed")
	ErrInvalidRef     = errors.New("invalid resource ref")
	ErrResourceLoad   = errors.New("resource load failed")
	ErrUnresolved     = errors.New("no materials resolved")
	ErrSourceNotFound = errors.New("configuration source not found")
	ErrUnknownKey     = errors.New("unknown category key")
	ErrRegionEntry    = errors.New("invalid region entry")
)

// ConfigLoadError reports a missing or malformed configuration document.
type ConfigLoadError struct {
	Name string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("loading configuration %q: %v", e.Name, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *ConfigLoadError) Unwrap() []error {
	return []error{ErrConfigLoad, e.Err}
}

// InvalidRefError reports a ref with a negative field found during validation.
// Region is set instead of Category for region-keyed documents.
type InvalidRefError struct {
	Category Category
	Region   string
	Season   Season
	Index    int
	Ref      ResourceRef
}

func (e *InvalidRefError) Error() string {
	owner := string(e.Category)
	if e.Region != "" {
		owner = fmt.Sprintf("region %q", e.Region)
	}
	return fmt.Sprintf("%s %s[%d]: ref %s has negative fields", owner, e.Season, e.Index, e.Ref)
}

// Unwrap returns ErrInvalidRef.
func (e *InvalidRefError) Unwrap() error {
	return ErrInvalidRef
}

// ResourceLoadError reports a single ref that could not become a handle.
type ResourceLoadError struct {
	Index int
	Ref   ResourceRef
	Err   error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("loading resource %s (slot %d): %v", e.Ref, e.Index, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *ResourceLoadError) Unwrap() []error {
	return []error{ErrResourceLoad, e.Err}
}
