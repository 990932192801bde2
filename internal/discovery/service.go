package discovery

import (
	"context"
	"fmt"
	"log"
)

// Service is the discovery API consumed by the HTTP layer. It owns the
// orchestration around the pure engine: loading profiles and criteria,
// running the ranking, and the bookkeeping side effects (history,
// preset counters, analytics).
type Service interface {
	// Search
	DiscoverMatches(ctx context.Context, viewerID string, criteria *FilterCriteria, limit int) (*RankResult, error)
	Compatibility(ctx context.Context, viewerID, candidateID string) (float64, ScoreFactors, error)

	// Active criteria
	GetCriteria(ctx context.Context, userID string) (*FilterCriteria, error)
	UpdateCriteria(ctx context.Context, userID string, criteria *FilterCriteria) error
	ResetCriteria(ctx context.Context, userID string) (*FilterCriteria, error)

	// Presets
	SavePreset(ctx context.Context, userID, name string, criteria *FilterCriteria) (*FilterPreset, error)
	UsePreset(ctx context.Context, userID, presetID string) (*FilterCriteria, error)
	ListPresets(ctx context.Context, userID string, order PresetOrder) ([]*FilterPreset, error)
	DeletePreset(ctx context.Context, userID, presetID string) error
	SeedDefaultPresets(ctx context.Context, userID string) error

	// History
	RecentSearches(ctx context.Context, userID string, limit int) ([]*SearchHistoryEntry, error)
	ClearHistory(ctx context.Context, userID string) error
	PopularFilters(ctx context.Context, userID string) ([]*PopularFilter, error)
}

type service struct {
	profiles  ProfileRepository
	engine    *RankingEngine
	presets   *PresetStore
	history   *HistoryLog
	criteria  *CriteriaStore
	analytics Analytics
	pageSize  int
}

func NewService(
	profiles ProfileRepository,
	engine *RankingEngine,
	presets *PresetStore,
	history *HistoryLog,
	criteria *CriteriaStore,
	analytics Analytics,
	pageSize int,
) Service {
	if analytics == nil {
		analytics = NewNopAnalytics()
	}
	return &service{
		profiles:  profiles,
		engine:    engine,
		presets:   presets,
		history:   history,
		criteria:  criteria,
		analytics: analytics,
		pageSize:  pageSize,
	}
}

// DiscoverMatches runs one search. A nil criteria means "use the
// viewer's stored criteria". The candidate batch comes pre-paginated
// from the repository; the engine ranks whatever it is handed.
func (s *service) DiscoverMatches(ctx context.Context, viewerID string, criteria *FilterCriteria, limit int) (*RankResult, error) {
	if criteria == nil {
		stored, err := s.criteria.Load(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		criteria = stored
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	viewer, err := s.profiles.FetchViewerProfile(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load viewer: %w", err)
	}

	batch, err := s.profiles.FetchCandidateBatch(ctx, HintsFromCriteria(viewerID, criteria), s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	result := s.engine.Rank(batch, criteria, viewer, limit)

	if _, err := s.history.Record(ctx, viewerID, criteria, result.Survivors); err != nil {
		// History is best-effort; a persistence hiccup must not fail
		// the search the user is looking at.
		log.Printf("discovery: record history for %s: %v", viewerID, err)
	}

	recordSearch(result.Survivors)
	s.analytics.SearchExecuted(ctx, viewerID, criteria.ActiveFilterCount(), result.Survivors)

	return &result, nil
}

// Compatibility scores a single (viewer, candidate) pair for the
// profile detail screen.
func (s *service) Compatibility(ctx context.Context, viewerID, candidateID string) (float64, ScoreFactors, error) {
	viewer, err := s.profiles.FetchViewerProfile(ctx, viewerID)
	if err != nil {
		return 0, ScoreFactors{}, err
	}
	candidate, err := s.profiles.FetchViewerProfile(ctx, candidateID)
	if err != nil {
		return 0, ScoreFactors{}, err
	}
	score, factors := ScoreCompatibility(viewer, candidate)
	return score, factors, nil
}

func (s *service) GetCriteria(ctx context.Context, userID string) (*FilterCriteria, error) {
	return s.criteria.Load(ctx, userID)
}

func (s *service) UpdateCriteria(ctx context.Context, userID string, criteria *FilterCriteria) error {
	return s.criteria.Save(ctx, userID, criteria)
}

func (s *service) ResetCriteria(ctx context.Context, userID string) (*FilterCriteria, error) {
	if err := s.criteria.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return DefaultFilterCriteria(), nil
}

func (s *service) SavePreset(ctx context.Context, userID, name string, criteria *FilterCriteria) (*FilterPreset, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return s.presets.Save(ctx, userID, name, criteria)
}

// UsePreset applies a preset: the embedded criteria become the viewer's
// active criteria and are returned for immediate use.
func (s *service) UsePreset(ctx context.Context, userID, presetID string) (*FilterCriteria, error) {
	criteria, err := s.presets.Use(ctx, userID, presetID)
	if err != nil {
		return nil, err
	}
	if err := s.criteria.Save(ctx, userID, criteria); err != nil {
		return nil, err
	}
	s.analytics.PresetUsed(ctx, userID, presetID)
	return criteria, nil
}

func (s *service) ListPresets(ctx context.Context, userID string, order PresetOrder) ([]*FilterPreset, error) {
	return s.presets.List(ctx, userID, order)
}

func (s *service) DeletePreset(ctx context.Context, userID, presetID string) error {
	return s.presets.Delete(ctx, userID, presetID)
}

func (s *service) SeedDefaultPresets(ctx context.Context, userID string) error {
	return s.presets.CreateDefaults(ctx, userID)
}

func (s *service) RecentSearches(ctx context.Context, userID string, limit int) ([]*SearchHistoryEntry, error) {
	return s.history.Recent(ctx, userID, limit)
}

func (s *service) ClearHistory(ctx context.Context, userID string) error {
	return s.history.Clear(ctx, userID)
}

func (s *service) PopularFilters(ctx context.Context, userID string) ([]*PopularFilter, error) {
	return s.history.PopularFilters(ctx, userID)
}
