package discovery

import (
	"context"
	"time"

	"github.com/imadgeboyega/gamelink-backend/internal/common/cache"
)

// ProfileCacheTTL is how long a fetched profile stays warm. Measured
// from insertion; a profile edit shows up in discovery within this
// window at worst.
const ProfileCacheTTL = 300 * time.Second

// CachedProfileRepository is a read-through decorator over a
// ProfileRepository. Viewer lookups hit the cache first; candidate
// batches warm it as a side effect, so the compatibility endpoint's
// follow-up profile fetches rarely touch storage.
type CachedProfileRepository struct {
	inner    ProfileRepository
	profiles *cache.TTLCache[string, *CandidateProfile]
}

func NewCachedProfileRepository(inner ProfileRepository, maxEntries int, ttl time.Duration) *CachedProfileRepository {
	if ttl <= 0 {
		ttl = ProfileCacheTTL
	}
	return &CachedProfileRepository{
		inner:    inner,
		profiles: cache.New[string, *CandidateProfile](maxEntries, ttl),
	}
}

func (r *CachedProfileRepository) FetchCandidateBatch(ctx context.Context, hints FilterHints, pageSize int) ([]*CandidateProfile, error) {
	batch, err := r.inner.FetchCandidateBatch(ctx, hints, pageSize)
	if err != nil {
		return nil, err
	}
	for _, p := range batch {
		r.profiles.Set(p.ID, p)
	}
	return batch, nil
}

func (r *CachedProfileRepository) FetchViewerProfile(ctx context.Context, viewerID string) (*CandidateProfile, error) {
	if p, ok := r.profiles.Get(viewerID); ok {
		recordCacheLookup(true)
		return p, nil
	}
	recordCacheLookup(false)

	p, err := r.inner.FetchViewerProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	r.profiles.Set(viewerID, p)
	return p, nil
}

// Invalidate drops a profile after an edit so the next fetch is fresh.
func (r *CachedProfileRepository) Invalidate(profileID string) {
	r.profiles.Remove(profileID)
}
