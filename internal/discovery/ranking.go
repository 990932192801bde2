package discovery

import (
	"runtime"
	"sort"
	"sync"
)

// parallelThreshold is the batch size above which filtering and scoring
// fan out across workers. Small batches stay single-threaded; the
// goroutine overhead is not worth it below this.
const parallelThreshold = 64

// RankingEngine orchestrates the filter and scorer over a candidate
// batch. Stateless and safe for concurrent use; every call operates
// only on its arguments.
type RankingEngine struct {
	// Workers bounds the scoring goroutines for large batches.
	// Zero means GOMAXPROCS.
	Workers int
}

func NewRankingEngine() *RankingEngine {
	return &RankingEngine{}
}

// Rank filters every candidate, scores the survivors, orders them by
// score descending with candidate id ascending as the tie-break, and
// truncates to limit. The survivor count is reported pre-truncation,
// so limit=0 still yields a correct count for count-only queries.
//
// Scoring across candidates is parallelized for large batches; the
// sort runs single-threaded afterwards, so the deterministic ordering
// contract holds regardless of scheduling.
func (e *RankingEngine) Rank(candidates []*CandidateProfile, criteria *FilterCriteria, viewer *CandidateProfile, limit int) RankResult {
	if len(candidates) == 0 {
		return RankResult{Candidates: []ScoredCandidate{}}
	}

	type slot struct {
		scored ScoredCandidate
		passed bool
	}
	slots := make([]slot, len(candidates))

	evaluate := func(i int) {
		c := candidates[i]
		outcome := EvaluateCandidate(c, viewer, criteria)
		if !outcome.Passed {
			recordCandidateRejected(outcome.Reason)
			return
		}
		score, factors := ScoreCompatibility(viewer, c)
		slots[i] = slot{
			scored: ScoredCandidate{CandidateID: c.ID, Score: score, Factors: factors},
			passed: true,
		}
	}

	if len(candidates) < parallelThreshold {
		for i := range candidates {
			evaluate(i)
		}
	} else {
		workers := e.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		var wg sync.WaitGroup
		indexes := make(chan int)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					evaluate(i)
				}
			}()
		}
		for i := range candidates {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	survivors := make([]ScoredCandidate, 0, len(candidates))
	for i := range slots {
		if slots[i].passed {
			survivors = append(survivors, slots[i].scored)
		}
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].Score != survivors[j].Score {
			return survivors[i].Score > survivors[j].Score
		}
		return survivors[i].CandidateID < survivors[j].CandidateID
	})

	result := RankResult{Survivors: len(survivors)}
	if limit < 0 {
		limit = 0
	}
	if limit < len(survivors) {
		survivors = survivors[:limit]
	}
	result.Candidates = survivors

	for _, s := range result.Candidates {
		recordCompatibilityScore(s.Score)
	}
	return result
}
