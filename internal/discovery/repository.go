package discovery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

// FilterHints are the coarse constraints pushed down to the candidate
// query. They pre-narrow the batch; the engine still runs the full
// filter chain over whatever comes back and never assumes the batch is
// the whole population.
type FilterHints struct {
	MinAge       int
	MaxAge       int
	VerifiedOnly bool
	OnlineOnly   bool
	Regions      []string
	ExcludeID    string // the viewer, never their own candidate
}

// HintsFromCriteria derives pushdown hints from the viewer's criteria.
func HintsFromCriteria(viewerID string, criteria *FilterCriteria) FilterHints {
	return FilterHints{
		MinAge:       criteria.MinAge,
		MaxAge:       criteria.MaxAge,
		VerifiedOnly: criteria.VerifiedOnly,
		OnlineOnly:   criteria.OnlineOnly,
		Regions:      criteria.Regions,
		ExcludeID:    viewerID,
	}
}

// ProfileRepository supplies candidate batches and single profiles to
// the engine. Implementations own all storage I/O; the engine only sees
// in-memory profiles.
type ProfileRepository interface {
	FetchCandidateBatch(ctx context.Context, hints FilterHints, pageSize int) ([]*CandidateProfile, error)
	FetchViewerProfile(ctx context.Context, viewerID string) (*CandidateProfile, error)
}

// Repository bundles every durable collaborator the discovery service
// needs behind one Postgres-backed implementation.
type Repository interface {
	ProfileRepository
	PresetRepository
	HistoryRepository
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// profileRow mirrors the profiles table. Array columns scan through
// pq.StringArray and are copied onto the domain type afterwards.
type profileRow struct {
	ID               string          `db:"id"`
	DisplayName      string          `db:"display_name"`
	Bio              string          `db:"bio"`
	Age              int             `db:"age"`
	LocationLat      sql.NullFloat64 `db:"location_lat"`
	LocationLng      sql.NullFloat64 `db:"location_lng"`
	IsVerified       bool            `db:"is_verified"`
	IsOnline         bool            `db:"is_online"`
	LastActive       time.Time       `db:"last_active"`
	HeightCM         *int            `db:"height_cm"`
	Education        *string         `db:"education"`
	Religion         *string         `db:"religion"`
	RelationshipGoal *string         `db:"relationship_goal"`
	Smoking          *string         `db:"smoking"`
	Drinking         *string         `db:"drinking"`
	Diet             *string         `db:"diet"`
	Pets             *string         `db:"pets"`
	Exercise         *string         `db:"exercise"`
	PlayStyle        *string         `db:"play_style"`
	SkillLevel       *string         `db:"skill_level"`
	VoiceChat        *string         `db:"voice_chat"`
	Region           *string         `db:"region"`
	TimezoneOffset   *int            `db:"timezone_offset"`
	AvailableDays    pq.StringArray  `db:"available_days"`
	Interests        pq.StringArray  `db:"interests"`
	Platforms        pq.StringArray  `db:"platforms"`
	Genres           pq.StringArray  `db:"genres"`
	LookingFor       pq.StringArray  `db:"looking_for"`
}

func (r *profileRow) toProfile() *CandidateProfile {
	p := &CandidateProfile{
		ID:               r.ID,
		DisplayName:      r.DisplayName,
		Bio:              r.Bio,
		Age:              r.Age,
		IsVerified:       r.IsVerified,
		IsOnline:         r.IsOnline,
		LastActive:       r.LastActive,
		HeightCM:         r.HeightCM,
		Education:        r.Education,
		Religion:         r.Religion,
		RelationshipGoal: r.RelationshipGoal,
		Smoking:          r.Smoking,
		Drinking:         r.Drinking,
		Diet:             r.Diet,
		Pets:             r.Pets,
		Exercise:         r.Exercise,
		PlayStyle:        r.PlayStyle,
		SkillLevel:       r.SkillLevel,
		VoiceChat:        r.VoiceChat,
		Region:           r.Region,
		TimezoneOffset:   r.TimezoneOffset,
		AvailableDays:    []string(r.AvailableDays),
		Interests:        []string(r.Interests),
		Platforms:        []string(r.Platforms),
		Genres:           []string(r.Genres),
		LookingFor:       []string(r.LookingFor),
	}
	if r.LocationLat.Valid && r.LocationLng.Valid {
		p.Location = &Coordinate{Latitude: r.LocationLat.Float64, Longitude: r.LocationLng.Float64}
	}
	return p
}

const profileColumns = `
    id, display_name, bio, age, location_lat, location_lng,
    is_verified, is_online, last_active, height_cm, education, religion,
    relationship_goal, smoking, drinking, diet, pets, exercise,
    play_style, skill_level, voice_chat, region, timezone_offset,
    available_days, interests, platforms, genres, looking_for
`

func (r *postgresRepository) FetchCandidateBatch(ctx context.Context, hints FilterHints, pageSize int) ([]*CandidateProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE id != $1
          AND age BETWEEN $2 AND $3
          AND ($4 = FALSE OR is_verified = TRUE)
          AND ($5 = FALSE OR is_online = TRUE)
          AND (cardinality($6::text[]) = 0 OR region = ANY($6))
        ORDER BY last_active DESC
        LIMIT $7
    `

	regions := hints.Regions
	if regions == nil {
		regions = []string{}
	}

	rows, err := r.db.QueryxContext(
		ctx, query,
		hints.ExcludeID, hints.MinAge, hints.MaxAge,
		hints.VerifiedOnly, hints.OnlineOnly,
		pq.StringArray(regions), pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate batch: %w", err)
	}
	defer rows.Close()

	var profiles []*CandidateProfile
	for rows.Next() {
		var row profileRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		profiles = append(profiles, row.toProfile())
	}
	return profiles, rows.Err()
}

func (r *postgresRepository) FetchViewerProfile(ctx context.Context, viewerID string) (*CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var row profileRow
	err := r.db.QueryRowxContext(ctx, query, viewerID).StructScan(&row)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return row.toProfile(), nil
}

// Preset persistence. Criteria snapshots live in a JSONB column.

func (r *postgresRepository) LoadPresets(ctx context.Context, userID string) ([]*FilterPreset, error) {
	query := `
        SELECT id, user_id, name, criteria, use_count, created_at, last_used_at
        FROM filter_presets
        WHERE user_id = $1
        ORDER BY created_at ASC
    `

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*FilterPreset
	for rows.Next() {
		var (
			preset       FilterPreset
			criteriaJSON []byte
		)
		if err := rows.Scan(
			&preset.ID, &preset.UserID, &preset.Name, &criteriaJSON,
			&preset.UseCount, &preset.CreatedAt, &preset.LastUsedAt,
		); err != nil {
			return nil, err
		}
		preset.Criteria = DefaultFilterCriteria()
		if err := json.Unmarshal(criteriaJSON, preset.Criteria); err != nil {
			return nil, fmt.Errorf("decode preset criteria: %w", err)
		}
		presets = append(presets, &preset)
	}
	return presets, rows.Err()
}

func (r *postgresRepository) SavePreset(ctx context.Context, preset *FilterPreset) error {
	criteriaJSON, err := json.Marshal(preset.Criteria)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO filter_presets (id, user_id, name, criteria, use_count, created_at, last_used_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = r.db.ExecContext(
		ctx, query,
		preset.ID, preset.UserID, preset.Name, criteriaJSON,
		preset.UseCount, preset.CreatedAt, preset.LastUsedAt,
	)
	return err
}

func (r *postgresRepository) UpdatePreset(ctx context.Context, preset *FilterPreset) error {
	query := `
        UPDATE filter_presets
        SET use_count = $2, last_used_at = $3
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, preset.ID, preset.UseCount, preset.LastUsedAt)
	return err
}

func (r *postgresRepository) DeletePreset(ctx context.Context, userID, presetID string) error {
	query := `DELETE FROM filter_presets WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, presetID, userID)
	return err
}

// Search history persistence.

func (r *postgresRepository) LoadHistory(ctx context.Context, userID string, limit int) ([]*SearchHistoryEntry, error) {
	query := `
        SELECT id, user_id, criteria, result_count, searched_at
        FROM search_history
        WHERE user_id = $1
        ORDER BY searched_at DESC
        LIMIT $2
    `

	rows, err := r.db.QueryxContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*SearchHistoryEntry
	for rows.Next() {
		var (
			entry        SearchHistoryEntry
			criteriaJSON []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &criteriaJSON,
			&entry.ResultCount, &entry.SearchedAt,
		); err != nil {
			return nil, err
		}
		entry.Criteria = DefaultFilterCriteria()
		if err := json.Unmarshal(criteriaJSON, entry.Criteria); err != nil {
			return nil, fmt.Errorf("decode history criteria: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func (r *postgresRepository) SaveHistoryEntry(ctx context.Context, entry *SearchHistoryEntry) error {
	criteriaJSON, err := json.Marshal(entry.Criteria)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO search_history (id, user_id, criteria, result_count, searched_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err = r.db.ExecContext(
		ctx, query,
		entry.ID, entry.UserID, criteriaJSON, entry.ResultCount, entry.SearchedAt,
	)
	return err
}

func (r *postgresRepository) DeleteHistoryEntry(ctx context.Context, userID, entryID string) error {
	query := `DELETE FROM search_history WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, entryID, userID)
	return err
}

func (r *postgresRepository) ClearHistory(ctx context.Context, userID string) error {
	query := `DELETE FROM search_history WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
