package ports

import "context"

// DocumentSource reads authored configuration documents by target name.
type DocumentSource interface {
	// Open returns the raw document and the file name it was read from, so
	// callers can pick a decoder. Missing documents wrap
	// entities.ErrSourceNotFound.
	Open(ctx context.Context, name string) (data []byte, filename string, err error)
}
