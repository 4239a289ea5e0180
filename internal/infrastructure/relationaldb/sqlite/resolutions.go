package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// LogResolution stores one resolution entry.
func (r *Repository) LogResolution(ctx context.Context, entry entities.ResolutionEntry) error {
	refs, err := json.Marshal(entry.Refs)
	if err != nil {
		return fmt.Errorf("marshaling refs: %w", err)
	}
	trail, err := json.Marshal(entry.Trail)
	if err != nil {
		return fmt.Errorf("marshaling trail: %w", err)
	}

	features := make([]string, len(entry.Features))
	for i, f := range entry.Features {
		features[i] = string(f)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := `
		INSERT INTO resolutions (
			id, target, profile, category, region, is_winter, features,
			status, rule, source_category, source_season, refs, trail,
			loaded, failed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Target,
		entry.Profile,
		string(entry.Category),
		nullString(entry.RegionName),
		entry.IsWinter,
		nullString(strings.Join(features, ",")),
		string(entry.Status),
		string(entry.Rule),
		nullString(string(entry.SourceCategory)),
		nullString(string(entry.SourceSeason)),
		string(refs),
		string(trail),
		entry.Loaded,
		entry.Failed,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("logging resolution: %w", err)
	}
	return nil
}

// FindResolutions returns the newest entries for a target.
func (r *Repository) FindResolutions(ctx context.Context, target string, limit int) ([]entities.ResolutionEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, target, profile, category, region, is_winter, features,
			status, rule, source_category, source_season, refs, trail,
			loaded, failed, created_at
		FROM resolutions
		WHERE target = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	return r.queryResolutions(ctx, query, target, limit)
}

// CountResolutionsByStatus returns how many resolutions ended in each status.
func (r *Repository) CountResolutionsByStatus(ctx context.Context) (map[entities.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM resolutions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting resolutions: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning resolution count: %w", err)
		}
		counts[entities.Status(status)] = n
	}
	return counts, rows.Err()
}

// queryResolutions is a helper to execute resolution queries.
func (r *Repository) queryResolutions(ctx context.Context, query string, args ...any) ([]entities.ResolutionEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying resolutions: %w", err)
	}
	defer rows.Close()

	var entries []entities.ResolutionEntry
	for rows.Next() {
		var entry entities.ResolutionEntry
		var category, status, rule, refs, trail string
		var region, features, sourceCategory, sourceSeason sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Target,
			&entry.Profile,
			&category,
			&region,
			&entry.IsWinter,
			&features,
			&status,
			&rule,
			&sourceCategory,
			&sourceSeason,
			&refs,
			&trail,
			&entry.Loaded,
			&entry.Failed,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning resolution: %w", err)
		}

		entry.Category = entities.Category(category)
		entry.RegionName = region.String
		entry.Status = entities.Status(status)
		entry.Rule = entities.Rule(rule)
		entry.SourceCategory = entities.Category(sourceCategory.String)
		entry.SourceSeason = entities.Season(sourceSeason.String)

		if features.String != "" {
			for _, f := range strings.Split(features.String, ",") {
				entry.Features = append(entry.Features, entities.FeatureFlag(f))
			}
		}
		if err := json.Unmarshal([]byte(refs), &entry.Refs); err != nil {
			return nil, fmt.Errorf("unmarshaling refs: %w", err)
		}
		if err := json.Unmarshal([]byte(trail), &entry.Trail); err != nil {
			return nil, fmt.Errorf("unmarshaling trail: %w", err)
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
