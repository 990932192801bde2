package discovery

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// analyticsChannel is the Redis pub/sub channel downstream consumers
// subscribe to.
const analyticsChannel = "discovery.events"

// AnalyticsEvent is the fire-and-forget payload emitted on search
// execution and preset usage.
type AnalyticsEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	PresetID    string    `json:"preset_id,omitempty"`
	ResultCount int       `json:"result_count,omitempty"`
	FilterCount int       `json:"filter_count,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Analytics receives discovery events. Nothing in the engine consumes a
// return value, so implementations must never block the search path.
type Analytics interface {
	SearchExecuted(ctx context.Context, userID string, filterCount, resultCount int)
	PresetUsed(ctx context.Context, userID, presetID string)
}

// redisAnalytics publishes events to Redis pub/sub. Publish failures
// are logged and dropped; analytics never fails a search.
type redisAnalytics struct {
	client *redis.Client
}

func NewRedisAnalytics(client *redis.Client) Analytics {
	return &redisAnalytics{client: client}
}

func (a *redisAnalytics) SearchExecuted(ctx context.Context, userID string, filterCount, resultCount int) {
	a.publish(ctx, AnalyticsEvent{
		Type:        "search_executed",
		UserID:      userID,
		FilterCount: filterCount,
		ResultCount: resultCount,
		OccurredAt:  time.Now().UTC(),
	})
}

func (a *redisAnalytics) PresetUsed(ctx context.Context, userID, presetID string) {
	a.publish(ctx, AnalyticsEvent{
		Type:       "preset_used",
		UserID:     userID,
		PresetID:   presetID,
		OccurredAt: time.Now().UTC(),
	})
}

func (a *redisAnalytics) publish(ctx context.Context, event AnalyticsEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("analytics: marshal %s event: %v", event.Type, err)
		return
	}
	if err := a.client.Publish(ctx, analyticsChannel, payload).Err(); err != nil {
		log.Printf("analytics: publish %s event: %v", event.Type, err)
	}
}

// nopAnalytics is used when Redis is not configured.
type nopAnalytics struct{}

func NewNopAnalytics() Analytics { return nopAnalytics{} }

func (nopAnalytics) SearchExecuted(context.Context, string, int, int) {}
func (nopAnalytics) PresetUsed(context.Context, string, string)       {}
