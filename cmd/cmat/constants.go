package main

// Default limits for CLI commands.
const (
	DefaultListLimit    = 50
	DefaultHistoryLimit = 20
	MaxListLimit        = 10000
)

// Valid output formats.
var validFormats = []string{"text", "json"}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
