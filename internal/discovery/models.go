package discovery

import (
	"math"
	"time"
)

// Coordinate is a WGS84 point. Producers are responsible for range
// checking; consumers must call Valid before trusting the values.
type Coordinate struct {
	Latitude  float64 `json:"latitude" db:"location_lat"`
	Longitude float64 `json:"longitude" db:"location_lng"`
}

// Valid reports whether both components are finite and in range
// (latitude [-90,90], longitude [-180,180]).
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// CandidateProfile is one profile as seen by the ranking pipeline.
// Instances are handed to the engine per search call and never mutated
// or persisted by it. Optional attributes are pointers; a nil pointer
// means the user has not declared that attribute.
type CandidateProfile struct {
	ID          string `json:"id" db:"id"`
	DisplayName string `json:"display_name" db:"display_name"`
	Bio         string `json:"bio" db:"bio"`
	Age         int    `json:"age" db:"age"`

	Location *Coordinate `json:"location,omitempty"`

	IsVerified bool      `json:"is_verified" db:"is_verified"`
	IsOnline   bool      `json:"is_online" db:"is_online"`
	LastActive time.Time `json:"last_active" db:"last_active"`

	// Scalar optional attributes, each drawn from a fixed vocabulary.
	HeightCM         *int    `json:"height_cm,omitempty" db:"height_cm"`
	Education        *string `json:"education,omitempty" db:"education"`
	Religion         *string `json:"religion,omitempty" db:"religion"`
	RelationshipGoal *string `json:"relationship_goal,omitempty" db:"relationship_goal"`
	Smoking          *string `json:"smoking,omitempty" db:"smoking"`
	Drinking         *string `json:"drinking,omitempty" db:"drinking"`
	Diet             *string `json:"diet,omitempty" db:"diet"`
	Pets             *string `json:"pets,omitempty" db:"pets"`
	Exercise         *string `json:"exercise,omitempty" db:"exercise"`
	PlayStyle        *string `json:"play_style,omitempty" db:"play_style"`
	SkillLevel       *string `json:"skill_level,omitempty" db:"skill_level"`
	VoiceChat        *string `json:"voice_chat,omitempty" db:"voice_chat"`
	Region           *string `json:"region,omitempty" db:"region"`

	// Schedule data for the availability-overlap predicate and bonus.
	TimezoneOffset *int     `json:"timezone_offset,omitempty" db:"timezone_offset"`
	AvailableDays  []string `json:"available_days,omitempty"`

	// Set-valued attributes.
	Interests  []string `json:"interests"`
	Platforms  []string `json:"platforms"`
	Genres     []string `json:"genres"`
	LookingFor []string `json:"looking_for"`
}

// CompletionScore returns a 0..1 estimate of how filled-out the profile
// is. Used for display ordering hints only, never by the scorer.
func (p *CandidateProfile) CompletionScore() float64 {
	total, filled := 8.0, 0.0
	if p.DisplayName != "" {
		filled++
	}
	if p.Bio != "" {
		filled++
	}
	if p.Location != nil {
		filled++
	}
	if len(p.Interests) > 0 {
		filled++
	}
	if len(p.Platforms) > 0 {
		filled++
	}
	if p.PlayStyle != nil {
		filled++
	}
	if p.SkillLevel != nil {
		filled++
	}
	if len(p.AvailableDays) > 0 {
		filled++
	}
	return filled / total
}

// ScoreFactors records each factor's contribution to a compatibility
// score so the UI can explain why a candidate ranked where it did.
type ScoreFactors struct {
	SharedInterests     float64 `json:"shared_interests"`
	SharedPlatforms     float64 `json:"shared_platforms"`
	PlayStyleMatch      float64 `json:"play_style_match"`
	SkillProximity      float64 `json:"skill_proximity"`
	LookingForMatch     float64 `json:"looking_for_match"`
	VoiceChatCompatible float64 `json:"voice_chat_compatible"`
	SharedGenres        float64 `json:"shared_genres"`
	ScheduleOverlap     float64 `json:"schedule_overlap"`
	OnlineNow           float64 `json:"online_now"`
	Verified            float64 `json:"verified"`
}

// ScoredCandidate is the per-candidate output of a ranking call.
// Produced fresh each call, never persisted.
type ScoredCandidate struct {
	CandidateID string       `json:"candidate_id"`
	Score       float64      `json:"score"`
	Factors     ScoreFactors `json:"factors"`
}

// RankResult is the outcome of one ranking call: the truncated ranked
// list plus the pre-truncation survivor count for "N matches found"
// reporting.
type RankResult struct {
	Candidates []ScoredCandidate `json:"candidates"`
	Survivors  int               `json:"survivors"`
}
