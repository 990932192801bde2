package discovery

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Documented defaults restored by Reset.
const (
	DefaultMinAge           = 18
	DefaultMaxAge           = 65
	DefaultMaxDistanceMiles = 100
)

var (
	ErrInvalidAgeRange    = errors.New("min age must be at least 18 and not exceed max age")
	ErrInvalidHeightRange = errors.New("min height must not exceed max height")
	ErrInvalidMaxDistance = errors.New("max distance must be positive")
)

// FilterCriteria is a viewer's active search constraints. One instance
// per viewer, long-lived, persisted through the criteria store. The
// engine never mutates it; all mutation goes through the setters so the
// range invariants hold at all times.
type FilterCriteria struct {
	MinAge           int     `json:"min_age"`
	MaxAge           int     `json:"max_age"`
	MinHeightCM      *int    `json:"min_height_cm,omitempty"`
	MaxHeightCM      *int    `json:"max_height_cm,omitempty"`
	MaxDistanceMiles float64 `json:"max_distance_miles"`

	VerifiedOnly           bool `json:"verified_only"`
	OnlineOnly             bool `json:"online_only"`
	RequireCommonInterest  bool `json:"require_common_interest"`
	RequireScheduleOverlap bool `json:"require_schedule_overlap"`

	Educations        []string `json:"educations,omitempty"`
	Religions         []string `json:"religions,omitempty"`
	RelationshipGoals []string `json:"relationship_goals,omitempty"`
	Smoking           []string `json:"smoking,omitempty"`
	Drinking          []string `json:"drinking,omitempty"`
	Diets             []string `json:"diets,omitempty"`
	Pets              []string `json:"pets,omitempty"`
	Exercise          []string `json:"exercise,omitempty"`
	Platforms         []string `json:"platforms,omitempty"`
	Genres            []string `json:"genres,omitempty"`
	SkillLevels       []string `json:"skill_levels,omitempty"`
	PlayStyles        []string `json:"play_styles,omitempty"`
	LookingFor        []string `json:"looking_for,omitempty"`
	VoiceChat         []string `json:"voice_chat,omitempty"`
	Regions           []string `json:"regions,omitempty"`
}

// DefaultFilterCriteria returns criteria with the documented defaults:
// ages 18-65, 100 mile radius, no sets, no toggles.
func DefaultFilterCriteria() *FilterCriteria {
	return &FilterCriteria{
		MinAge:           DefaultMinAge,
		MaxAge:           DefaultMaxAge,
		MaxDistanceMiles: DefaultMaxDistanceMiles,
	}
}

// Validate checks the range invariants. Criteria loaded from storage or
// decoded from a request must pass Validate before reaching the engine;
// the engine itself does not re-validate.
func (c *FilterCriteria) Validate() error {
	if c.MinAge < 18 || c.MinAge > c.MaxAge {
		return ErrInvalidAgeRange
	}
	if c.MinHeightCM != nil && c.MaxHeightCM != nil && *c.MinHeightCM > *c.MaxHeightCM {
		return ErrInvalidHeightRange
	}
	if c.MaxDistanceMiles < 0 {
		return ErrInvalidMaxDistance
	}
	return nil
}

// SetAgeRange updates the age bounds, rejecting invalid ranges.
func (c *FilterCriteria) SetAgeRange(minAge, maxAge int) error {
	if minAge < 18 || minAge > maxAge {
		return ErrInvalidAgeRange
	}
	c.MinAge, c.MaxAge = minAge, maxAge
	return nil
}

// SetHeightRange updates the height bounds, rejecting inverted ranges.
// Passing two nils clears the height filter.
func (c *FilterCriteria) SetHeightRange(minCM, maxCM *int) error {
	if minCM != nil && maxCM != nil && *minCM > *maxCM {
		return ErrInvalidHeightRange
	}
	c.MinHeightCM, c.MaxHeightCM = minCM, maxCM
	return nil
}

// SetMaxDistance updates the distance bound in miles.
func (c *FilterCriteria) SetMaxDistance(miles float64) error {
	if miles <= 0 {
		return ErrInvalidMaxDistance
	}
	c.MaxDistanceMiles = miles
	return nil
}

// Reset restores every field to its documented default.
func (c *FilterCriteria) Reset() {
	*c = *DefaultFilterCriteria()
}

// sets returns the named filter sets in a fixed order, paired with
// display labels for Summary.
func (c *FilterCriteria) sets() []struct {
	label  string
	values []string
} {
	return []struct {
		label  string
		values []string
	}{
		{"education", c.Educations},
		{"religion", c.Religions},
		{"relationship goals", c.RelationshipGoals},
		{"smoking", c.Smoking},
		{"drinking", c.Drinking},
		{"diet", c.Diets},
		{"pets", c.Pets},
		{"exercise", c.Exercise},
		{"platforms", c.Platforms},
		{"genres", c.Genres},
		{"skill levels", c.SkillLevels},
		{"play styles", c.PlayStyles},
		{"looking for", c.LookingFor},
		{"voice chat", c.VoiceChat},
		{"regions", c.Regions},
	}
}

// ActiveFilterCount counts the constraints that differ from defaults.
func (c *FilterCriteria) ActiveFilterCount() int {
	count := 0
	if c.MinAge != DefaultMinAge || c.MaxAge != DefaultMaxAge {
		count++
	}
	if c.MinHeightCM != nil || c.MaxHeightCM != nil {
		count++
	}
	if c.MaxDistanceMiles != DefaultMaxDistanceMiles {
		count++
	}
	for _, toggle := range []bool{c.VerifiedOnly, c.OnlineOnly, c.RequireCommonInterest, c.RequireScheduleOverlap} {
		if toggle {
			count++
		}
	}
	for _, s := range c.sets() {
		if len(s.values) > 0 {
			count++
		}
	}
	return count
}

// HasActiveFilters reports whether any constraint differs from defaults.
func (c *FilterCriteria) HasActiveFilters() bool {
	return c.ActiveFilterCount() > 0
}

// Summary renders a short human-readable description of the active
// constraints for the filter bar, e.g.
// "Ages 21-30, within 25 mi, verified only, platforms (2)".
func (c *FilterCriteria) Summary() string {
	parts := []string{fmt.Sprintf("Ages %d-%d", c.MinAge, c.MaxAge)}

	if c.MaxDistanceMiles != DefaultMaxDistanceMiles {
		parts = append(parts, fmt.Sprintf("within %.0f mi", c.MaxDistanceMiles))
	}
	if c.MinHeightCM != nil || c.MaxHeightCM != nil {
		switch {
		case c.MinHeightCM != nil && c.MaxHeightCM != nil:
			parts = append(parts, fmt.Sprintf("height %d-%dcm", *c.MinHeightCM, *c.MaxHeightCM))
		case c.MinHeightCM != nil:
			parts = append(parts, fmt.Sprintf("height %dcm+", *c.MinHeightCM))
		default:
			parts = append(parts, fmt.Sprintf("height up to %dcm", *c.MaxHeightCM))
		}
	}
	if c.VerifiedOnly {
		parts = append(parts, "verified only")
	}
	if c.OnlineOnly {
		parts = append(parts, "online now")
	}
	if c.RequireCommonInterest {
		parts = append(parts, "common interests")
	}
	if c.RequireScheduleOverlap {
		parts = append(parts, "schedule overlap")
	}
	for _, s := range c.sets() {
		if len(s.values) > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", s.label, len(s.values)))
		}
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy. Presets and history entries embed clones
// so later edits to the live criteria do not rewrite saved snapshots.
func (c *FilterCriteria) Clone() *FilterCriteria {
	out := *c
	out.MinHeightCM = clonePtr(c.MinHeightCM)
	out.MaxHeightCM = clonePtr(c.MaxHeightCM)
	out.Educations = cloneSlice(c.Educations)
	out.Religions = cloneSlice(c.Religions)
	out.RelationshipGoals = cloneSlice(c.RelationshipGoals)
	out.Smoking = cloneSlice(c.Smoking)
	out.Drinking = cloneSlice(c.Drinking)
	out.Diets = cloneSlice(c.Diets)
	out.Pets = cloneSlice(c.Pets)
	out.Exercise = cloneSlice(c.Exercise)
	out.Platforms = cloneSlice(c.Platforms)
	out.Genres = cloneSlice(c.Genres)
	out.SkillLevels = cloneSlice(c.SkillLevels)
	out.PlayStyles = cloneSlice(c.PlayStyles)
	out.LookingFor = cloneSlice(c.LookingFor)
	out.VoiceChat = cloneSlice(c.VoiceChat)
	out.Regions = cloneSlice(c.Regions)
	return &out
}

// Fingerprint returns a stable hash of the criteria's content. Two
// criteria with the same constraints fingerprint identically regardless
// of the order values were added to the sets; the history log uses this
// to group structurally-equal searches.
func (c *FilterCriteria) Fingerprint() string {
	canon := c.Clone()
	for _, s := range [][]string{
		canon.Educations, canon.Religions, canon.RelationshipGoals,
		canon.Smoking, canon.Drinking, canon.Diets, canon.Pets,
		canon.Exercise, canon.Platforms, canon.Genres, canon.SkillLevels,
		canon.PlayStyles, canon.LookingFor, canon.VoiceChat, canon.Regions,
	} {
		sort.Strings(s)
	}
	data, _ := json.Marshal(canon)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
