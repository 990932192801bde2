package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLogRecordAndRecent(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	first := DefaultFilterCriteria()
	second := DefaultFilterCriteria()
	second.VerifiedOnly = true

	_, err := log.Record(ctx, "user-1", first, 12)
	require.NoError(t, err)
	_, err = log.Record(ctx, "user-1", second, 4)
	require.NoError(t, err)

	recent, err := log.Recent(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Criteria.VerifiedOnly, "newest entry first")
	assert.Equal(t, 4, recent[0].ResultCount)
	assert.Equal(t, 12, recent[1].ResultCount)

	// limit bounds the slice; zero means everything.
	one, err := log.Recent(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
	all, err := log.Recent(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHistoryLogSnapshotsCriteria(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	criteria := DefaultFilterCriteria()
	criteria.Platforms = []string{"pc"}
	_, err := log.Record(ctx, "user-1", criteria, 1)
	require.NoError(t, err)

	criteria.Platforms[0] = "xbox"
	recent, err := log.Recent(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "pc", recent[0].Criteria.Platforms[0])
}

func TestHistoryLogEvictsOldest(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	for i := 0; i < MaxHistoryEntries+5; i++ {
		_, err := log.Record(ctx, "user-1", DefaultFilterCriteria(), i)
		require.NoError(t, err)
	}

	recent, err := log.Recent(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recent, MaxHistoryEntries)
	assert.Equal(t, MaxHistoryEntries+4, recent[0].ResultCount, "newest survives")
	assert.Equal(t, 5, recent[len(recent)-1].ResultCount, "first five evicted")
}

func TestHistoryLogClear(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	_, err := log.Record(ctx, "user-1", DefaultFilterCriteria(), 3)
	require.NoError(t, err)
	require.NoError(t, log.Clear(ctx, "user-1"))

	recent, err := log.Recent(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestHistoryLogPopularFilters(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	verified := DefaultFilterCriteria()
	verified.VerifiedOnly = true

	pc := DefaultFilterCriteria()
	pc.Platforms = []string{"pc", "switch"}

	// Same set in a different order is the same shape.
	pcReordered := DefaultFilterCriteria()
	pcReordered.Platforms = []string{"switch", "pc"}

	for _, c := range []*FilterCriteria{verified, pc, pcReordered, pc, verified, pc} {
		_, err := log.Record(ctx, "user-1", c, 0)
		require.NoError(t, err)
	}

	popular, err := log.PopularFilters(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, 4, popular[0].Count)
	assert.ElementsMatch(t, []string{"pc", "switch"}, popular[0].Criteria.Platforms)
	assert.Equal(t, 2, popular[1].Count)
	assert.True(t, popular[1].Criteria.VerifiedOnly)
}

func TestHistoryLogUsersAreIsolated(t *testing.T) {
	log := NewHistoryLog(nil)
	ctx := context.Background()

	_, err := log.Record(ctx, "user-1", DefaultFilterCriteria(), 1)
	require.NoError(t, err)

	recent, err := log.Recent(ctx, "user-2", 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

// fakeHistoryRepo records persistence calls.
type fakeHistoryRepo struct {
	stored  []*SearchHistoryEntry
	deletes []string
	cleared bool
}

func (r *fakeHistoryRepo) LoadHistory(_ context.Context, userID string, _ int) ([]*SearchHistoryEntry, error) {
	out := []*SearchHistoryEntry{}
	for _, e := range r.stored {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) SaveHistoryEntry(_ context.Context, e *SearchHistoryEntry) error {
	r.stored = append(r.stored, e)
	return nil
}

func (r *fakeHistoryRepo) DeleteHistoryEntry(_ context.Context, _, entryID string) error {
	r.deletes = append(r.deletes, entryID)
	return nil
}

func (r *fakeHistoryRepo) ClearHistory(_ context.Context, _ string) error {
	r.cleared = true
	return nil
}

func TestHistoryLogMirrorsEvictionToRepository(t *testing.T) {
	repo := &fakeHistoryRepo{}
	log := NewHistoryLog(repo)
	ctx := context.Background()

	var oldest string
	for i := 0; i < MaxHistoryEntries+1; i++ {
		entry, err := log.Record(ctx, "user-1", DefaultFilterCriteria(), i)
		require.NoError(t, err)
		if i == 0 {
			oldest = entry.ID
		}
	}

	require.Len(t, repo.deletes, 1)
	assert.Equal(t, oldest, repo.deletes[0])

	require.NoError(t, log.Clear(ctx, "user-1"))
	assert.True(t, repo.cleared)
}

func TestHistoryLogReloadsOldestFirst(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeHistoryRepo{stored: []*SearchHistoryEntry{
		{ID: "b", UserID: "user-1", Criteria: DefaultFilterCriteria(), ResultCount: 2, SearchedAt: now},
		{ID: "a", UserID: "user-1", Criteria: DefaultFilterCriteria(), ResultCount: 1, SearchedAt: now.Add(-time.Hour)},
	}}
	log := NewHistoryLog(repo)

	recent, err := log.Recent(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].ID, "newest first regardless of storage order")
	assert.Equal(t, "a", recent[1].ID)
}
