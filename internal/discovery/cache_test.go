package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProfileRepo struct {
	*fakeProfileRepo
	viewerFetches int
}

func (r *countingProfileRepo) FetchViewerProfile(ctx context.Context, viewerID string) (*CandidateProfile, error) {
	r.viewerFetches++
	return r.fakeProfileRepo.FetchViewerProfile(ctx, viewerID)
}

func TestCachedProfileRepositoryReadThrough(t *testing.T) {
	inner := &countingProfileRepo{fakeProfileRepo: serviceFixture()}
	cached := NewCachedProfileRepository(inner, 100, time.Minute)
	ctx := context.Background()

	first, err := cached.FetchViewerProfile(ctx, "viewer")
	require.NoError(t, err)
	second, err := cached.FetchViewerProfile(ctx, "viewer")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.viewerFetches, "second fetch served from cache")

	_, err = cached.FetchViewerProfile(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCachedProfileRepositoryBatchWarmsCache(t *testing.T) {
	inner := &countingProfileRepo{fakeProfileRepo: serviceFixture()}
	cached := NewCachedProfileRepository(inner, 100, time.Minute)
	ctx := context.Background()

	batch, err := cached.FetchCandidateBatch(ctx, FilterHints{ExcludeID: "viewer"}, 100)
	require.NoError(t, err)
	require.NotEmpty(t, batch)

	// Every batched profile is now a cache hit.
	_, err = cached.FetchViewerProfile(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, inner.viewerFetches)
}

func TestCachedProfileRepositoryInvalidate(t *testing.T) {
	inner := &countingProfileRepo{fakeProfileRepo: serviceFixture()}
	cached := NewCachedProfileRepository(inner, 100, time.Minute)
	ctx := context.Background()

	_, err := cached.FetchViewerProfile(ctx, "viewer")
	require.NoError(t, err)

	cached.Invalidate("viewer")
	_, err = cached.FetchViewerProfile(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.viewerFetches)
}
