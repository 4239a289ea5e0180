package mocks

import (
	"context"
	"fmt"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// DocumentSource is a mock implementation of ports.DocumentSource.
// Documents are keyed by target name; the file name is name + ".json".
type DocumentSource struct {
	Documents map[string]string
	Err       error

	// Call tracking
	OpenedNames []string
}

// Open returns the configured document.
func (m *DocumentSource) Open(ctx context.Context, name string) ([]byte, string, error) {
	m.OpenedNames = append(m.OpenedNames, name)
	if m.Err != nil {
		return nil, "", m.Err
	}
	doc, ok := m.Documents[name]
	if !ok {
		return nil, "", fmt.Errorf("%s: %w", name, entities.ErrSourceNotFound)
	}
	return []byte(doc), name + ".json", nil
}
