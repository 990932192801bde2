package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxPresetsPerUser bounds the saved preset collection. Saving beyond
// the bound fails loudly instead of evicting silently.
const MaxPresetsPerUser = 10

var (
	ErrPresetLimit    = errors.New("maximum presets reached - delete one to save a new preset")
	ErrPresetNotFound = errors.New("preset not found")
)

// FilterPreset is a named, reusable snapshot of filter criteria with
// usage statistics.
type FilterPreset struct {
	ID         string          `json:"id" db:"id"`
	UserID     string          `json:"user_id" db:"user_id"`
	Name       string          `json:"name" db:"name"`
	Criteria   *FilterCriteria `json:"criteria"`
	UseCount   int             `json:"use_count" db:"use_count"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time      `json:"last_used_at,omitempty" db:"last_used_at"`
}

// PresetOrder selects the sort for List.
type PresetOrder string

const (
	PresetOrderMostUsed   PresetOrder = "most_used"
	PresetOrderMostRecent PresetOrder = "most_recent"
)

// PresetRepository is the durable store behind the preset collection.
// The store loads a user's presets once and writes back on every
// mutation.
type PresetRepository interface {
	LoadPresets(ctx context.Context, userID string) ([]*FilterPreset, error)
	SavePreset(ctx context.Context, preset *FilterPreset) error
	UpdatePreset(ctx context.Context, preset *FilterPreset) error
	DeletePreset(ctx context.Context, userID, presetID string) error
}

// PresetStore manages saved filter presets per viewer. All mutations
// are serialized behind a single mutex; reads observe a consistent
// snapshot.
type PresetStore struct {
	mu     sync.RWMutex
	repo   PresetRepository
	byUser map[string][]*FilterPreset
	loaded map[string]bool
}

func NewPresetStore(repo PresetRepository) *PresetStore {
	return &PresetStore{
		repo:   repo,
		byUser: make(map[string][]*FilterPreset),
		loaded: make(map[string]bool),
	}
}

// ensureLoaded pulls the user's presets from the repository on first
// touch. Callers must hold the write lock.
func (s *PresetStore) ensureLoaded(ctx context.Context, userID string) error {
	if s.loaded[userID] {
		return nil
	}
	if s.repo != nil {
		presets, err := s.repo.LoadPresets(ctx, userID)
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		s.byUser[userID] = presets
	}
	s.loaded[userID] = true
	return nil
}

// Save snapshots the criteria under a display name. Fails with
// ErrPresetLimit once the user holds MaxPresetsPerUser presets; the
// existing collection is left untouched.
func (s *PresetStore) Save(ctx context.Context, userID, name string, criteria *FilterCriteria) (*FilterPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	if len(s.byUser[userID]) >= MaxPresetsPerUser {
		return nil, ErrPresetLimit
	}

	preset := &FilterPreset{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Criteria:  criteria.Clone(),
		CreatedAt: time.Now().UTC(),
	}
	if s.repo != nil {
		if err := s.repo.SavePreset(ctx, preset); err != nil {
			return nil, fmt.Errorf("persist preset: %w", err)
		}
	}
	s.byUser[userID] = append(s.byUser[userID], preset)
	return preset, nil
}

// Use applies a preset: bumps its usage counter, stamps last-used, and
// returns a copy of the embedded criteria for the caller to apply.
func (s *PresetStore) Use(ctx context.Context, userID, presetID string) (*FilterCriteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	preset := s.find(userID, presetID)
	if preset == nil {
		return nil, ErrPresetNotFound
	}

	now := time.Now().UTC()
	preset.UseCount++
	preset.LastUsedAt = &now
	if s.repo != nil {
		if err := s.repo.UpdatePreset(ctx, preset); err != nil {
			return nil, fmt.Errorf("persist preset use: %w", err)
		}
	}
	recordPresetUse()
	return preset.Criteria.Clone(), nil
}

// List returns the user's presets in the requested order. The returned
// slice is a snapshot; mutating it does not affect the store.
func (s *PresetStore) List(ctx context.Context, userID string, order PresetOrder) ([]*FilterPreset, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx, userID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	presets := make([]*FilterPreset, len(s.byUser[userID]))
	copy(presets, s.byUser[userID])
	s.mu.Unlock()

	switch order {
	case PresetOrderMostUsed:
		sort.SliceStable(presets, func(i, j int) bool {
			if presets[i].UseCount != presets[j].UseCount {
				return presets[i].UseCount > presets[j].UseCount
			}
			return lastUsed(presets[i]).After(lastUsed(presets[j]))
		})
	default:
		sort.SliceStable(presets, func(i, j int) bool {
			return lastUsed(presets[i]).After(lastUsed(presets[j]))
		})
	}
	return presets, nil
}

// Delete removes a preset.
func (s *PresetStore) Delete(ctx context.Context, userID, presetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return err
	}
	presets := s.byUser[userID]
	for i, p := range presets {
		if p.ID == presetID {
			if s.repo != nil {
				if err := s.repo.DeletePreset(ctx, userID, presetID); err != nil {
					return fmt.Errorf("delete preset: %w", err)
				}
			}
			s.byUser[userID] = append(presets[:i], presets[i+1:]...)
			return nil
		}
	}
	return ErrPresetNotFound
}

// CreateDefaults seeds the starter presets for a user with none saved.
// Idempotent: repeated calls never duplicate and never touch a user who
// already has presets.
func (s *PresetStore) CreateDefaults(ctx context.Context, userID string) error {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx, userID); err != nil {
		s.mu.Unlock()
		return err
	}
	alreadySeeded := len(s.byUser[userID]) > 0
	s.mu.Unlock()

	if alreadySeeded {
		return nil
	}

	nearby := DefaultFilterCriteria()
	nearby.MaxDistanceMiles = 25
	nearby.VerifiedOnly = true

	active := DefaultFilterCriteria()
	active.OnlineOnly = true

	love := DefaultFilterCriteria()
	love.RelationshipGoals = []string{"long_term"}
	love.RequireCommonInterest = true

	defaults := []struct {
		name     string
		criteria *FilterCriteria
	}{
		{"Nearby & Verified", nearby},
		{"Active This Week", active},
		{"Looking for Love", love},
	}
	for _, d := range defaults {
		if _, err := s.Save(ctx, userID, d.name, d.criteria); err != nil {
			return err
		}
	}
	return nil
}

func (s *PresetStore) find(userID, presetID string) *FilterPreset {
	for _, p := range s.byUser[userID] {
		if p.ID == presetID {
			return p
		}
	}
	return nil
}

func lastUsed(p *FilterPreset) time.Time {
	if p.LastUsedAt != nil {
		return *p.LastUsedAt
	}
	return p.CreatedAt
}
