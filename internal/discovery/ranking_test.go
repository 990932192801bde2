package discovery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankBatch builds n candidates with varied attributes. Candidate IDs
// are zero-padded so string ordering matches numeric ordering.
func rankBatch(n int) []*CandidateProfile {
	interests := []string{"raids", "pvp", "speedruns", "crafting", "lore"}
	batch := make([]*CandidateProfile, n)
	for i := 0; i < n; i++ {
		batch[i] = &CandidateProfile{
			ID:         fmt.Sprintf("cand-%04d", i),
			Age:        20 + i%30,
			IsVerified: i%2 == 0,
			IsOnline:   i%3 == 0,
			Interests:  interests[:1+i%len(interests)],
			Platforms:  []string{"pc"},
		}
	}
	return batch
}

func TestRankEmptyBatch(t *testing.T) {
	engine := NewRankingEngine()
	result := engine.Rank(nil, DefaultFilterCriteria(), testViewer(), 20)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 0, result.Survivors)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	viewer := &CandidateProfile{ID: "viewer", Age: 25, Interests: []string{"pvp", "raids", "lore"}}
	candidates := []*CandidateProfile{
		{ID: "low", Age: 25, Interests: []string{"pvp"}},
		{ID: "high", Age: 25, Interests: []string{"pvp", "raids", "lore"}},
		{ID: "mid", Age: 25, Interests: []string{"pvp", "raids"}},
	}

	result := NewRankingEngine().Rank(candidates, DefaultFilterCriteria(), viewer, 10)
	require.Len(t, result.Candidates, 3)
	assert.Equal(t, "high", result.Candidates[0].CandidateID)
	assert.Equal(t, "mid", result.Candidates[1].CandidateID)
	assert.Equal(t, "low", result.Candidates[2].CandidateID)
	assert.Equal(t, 3, result.Survivors)
}

func TestRankTieBreaksByIDAscending(t *testing.T) {
	viewer := &CandidateProfile{ID: "viewer", Age: 30}
	// Identical profiles score identically; order must fall back to id.
	candidates := []*CandidateProfile{
		{ID: "charlie", Age: 30},
		{ID: "alice", Age: 30},
		{ID: "bob", Age: 30},
	}

	result := NewRankingEngine().Rank(candidates, DefaultFilterCriteria(), viewer, 10)
	require.Len(t, result.Candidates, 3)
	assert.Equal(t, "alice", result.Candidates[0].CandidateID)
	assert.Equal(t, "bob", result.Candidates[1].CandidateID)
	assert.Equal(t, "charlie", result.Candidates[2].CandidateID)
}

func TestRankAppliesFilterBeforeScoring(t *testing.T) {
	viewer := testViewer()
	criteria := DefaultFilterCriteria()
	criteria.VerifiedOnly = true

	candidates := rankBatch(10)
	result := NewRankingEngine().Rank(candidates, criteria, viewer, 100)

	assert.Equal(t, 5, result.Survivors) // even indexes are verified
	for _, s := range result.Candidates {
		assert.GreaterOrEqual(t, s.Factors.Verified, 10.0)
	}
}

func TestRankLimitTruncatesAfterCounting(t *testing.T) {
	viewer := testViewer()
	candidates := rankBatch(30)

	result := NewRankingEngine().Rank(candidates, DefaultFilterCriteria(), viewer, 5)
	assert.Len(t, result.Candidates, 5)
	assert.Equal(t, 30, result.Survivors)

	// limit=0 is a count-only query.
	result = NewRankingEngine().Rank(candidates, DefaultFilterCriteria(), viewer, 0)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 30, result.Survivors)

	// Negative limits behave like zero.
	result = NewRankingEngine().Rank(candidates, DefaultFilterCriteria(), viewer, -3)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 30, result.Survivors)
}

func TestRankParallelMatchesSequential(t *testing.T) {
	viewer := &CandidateProfile{
		ID:        "viewer",
		Age:       27,
		Interests: []string{"raids", "pvp", "lore"},
		Platforms: []string{"pc"},
	}
	// Well above parallelThreshold to force the worker path.
	candidates := rankBatch(500)
	criteria := DefaultFilterCriteria()
	criteria.MaxAge = 45

	parallel := NewRankingEngine()
	sequential := &RankingEngine{Workers: 1}

	want := sequential.Rank(candidates, criteria, viewer, 50)
	for i := 0; i < 5; i++ {
		got := parallel.Rank(candidates, criteria, viewer, 50)
		assert.Equal(t, want, got, "run %d diverged", i)
	}
}
