package discovery

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxHistoryEntries caps the per-user search history ring. The oldest
// entry is evicted on overflow.
const MaxHistoryEntries = 50

// SearchHistoryEntry is one recorded search: the criteria snapshot,
// when it ran, and how many matches it found.
type SearchHistoryEntry struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Criteria    *FilterCriteria `json:"criteria"`
	ResultCount int             `json:"result_count" db:"result_count"`
	SearchedAt  time.Time       `json:"searched_at" db:"searched_at"`
}

// PopularFilter pairs a criteria shape with how often it was searched.
type PopularFilter struct {
	Criteria *FilterCriteria `json:"criteria"`
	Count    int             `json:"count"`
}

// HistoryRepository persists the history ring. Eviction is mirrored to
// storage so a restart reloads at most MaxHistoryEntries rows.
type HistoryRepository interface {
	LoadHistory(ctx context.Context, userID string, limit int) ([]*SearchHistoryEntry, error)
	SaveHistoryEntry(ctx context.Context, entry *SearchHistoryEntry) error
	DeleteHistoryEntry(ctx context.Context, userID, entryID string) error
	ClearHistory(ctx context.Context, userID string) error
}

// HistoryLog is the per-user append-only search log, a FIFO ring capped
// at MaxHistoryEntries. Mutations are serialized behind one mutex.
type HistoryLog struct {
	mu     sync.RWMutex
	repo   HistoryRepository
	byUser map[string][]*SearchHistoryEntry // oldest first
	loaded map[string]bool
}

func NewHistoryLog(repo HistoryRepository) *HistoryLog {
	return &HistoryLog{
		repo:   repo,
		byUser: make(map[string][]*SearchHistoryEntry),
		loaded: make(map[string]bool),
	}
}

func (l *HistoryLog) ensureLoaded(ctx context.Context, userID string) error {
	if l.loaded[userID] {
		return nil
	}
	if l.repo != nil {
		entries, err := l.repo.LoadHistory(ctx, userID, MaxHistoryEntries)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].SearchedAt.Before(entries[j].SearchedAt)
		})
		l.byUser[userID] = entries
	}
	l.loaded[userID] = true
	return nil
}

// Record appends a search to the log, evicting the oldest entry once
// the ring is full.
func (l *HistoryLog) Record(ctx context.Context, userID string, criteria *FilterCriteria, resultCount int) (*SearchHistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	entry := &SearchHistoryEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Criteria:    criteria.Clone(),
		ResultCount: resultCount,
		SearchedAt:  time.Now().UTC(),
	}
	if l.repo != nil {
		if err := l.repo.SaveHistoryEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("persist history entry: %w", err)
		}
	}

	entries := append(l.byUser[userID], entry)
	if len(entries) > MaxHistoryEntries {
		evicted := entries[0]
		entries = entries[1:]
		if l.repo != nil {
			if err := l.repo.DeleteHistoryEntry(ctx, userID, evicted.ID); err != nil {
				return nil, fmt.Errorf("evict history entry: %w", err)
			}
		}
	}
	l.byUser[userID] = entries
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (l *HistoryLog) Recent(ctx context.Context, userID string, limit int) ([]*SearchHistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	entries := l.byUser[userID]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]*SearchHistoryEntry, 0, limit)
	for i := len(entries) - 1; i >= len(entries)-limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Clear empties the user's log.
func (l *HistoryLog) Clear(ctx context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, userID); err != nil {
		return err
	}
	if l.repo != nil {
		if err := l.repo.ClearHistory(ctx, userID); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}
	l.byUser[userID] = nil
	return nil
}

// PopularFilters groups the user's history by structurally-equal
// criteria and returns the shapes sorted by how often they were
// searched, most frequent first. Ties order by most recent use.
func (l *HistoryLog) PopularFilters(ctx context.Context, userID string) ([]*PopularFilter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	type group struct {
		filter   *PopularFilter
		lastSeen time.Time
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, entry := range l.byUser[userID] {
		key := entry.Criteria.Fingerprint()
		g, ok := groups[key]
		if !ok {
			g = &group{filter: &PopularFilter{Criteria: entry.Criteria.Clone()}}
			groups[key] = g
			order = append(order, key)
		}
		g.filter.Count++
		if entry.SearchedAt.After(g.lastSeen) {
			g.lastSeen = entry.SearchedAt
		}
	}

	out := make([]*PopularFilter, 0, len(groups))
	for _, key := range order {
		out = append(out, groups[key].filter)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return groups[out[i].Criteria.Fingerprint()].lastSeen.After(
			groups[out[j].Criteria.Fingerprint()].lastSeen)
	})
	return out, nil
}
