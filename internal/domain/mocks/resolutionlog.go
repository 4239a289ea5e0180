package mocks

import (
	"context"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// ResolutionLog is a mock implementation of ports.ResolutionLog.
type ResolutionLog struct {
	Entries []entities.ResolutionEntry
	Err     error

	// Call tracking
	LogCallCount int
}

// LogResolution records the entry unless Err is set.
func (m *ResolutionLog) LogResolution(ctx context.Context, entry entities.ResolutionEntry) error {
	m.LogCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// FindResolutions returns recorded entries for target, newest first.
func (m *ResolutionLog) FindResolutions(ctx context.Context, target string, limit int) ([]entities.ResolutionEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.ResolutionEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Target != target {
			continue
		}
		out = append(out, m.Entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
