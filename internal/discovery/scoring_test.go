package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCompatibilityEmptyProfiles(t *testing.T) {
	score, factors := ScoreCompatibility(&CandidateProfile{}, &CandidateProfile{})
	assert.Equal(t, 0.0, score)
	assert.Equal(t, ScoreFactors{}, factors)
}

func TestScoreCompatibilitySharedInterests(t *testing.T) {
	viewer := &CandidateProfile{Interests: []string{"rpg", "speedruns", "lore"}}
	candidate := &CandidateProfile{Interests: []string{"lore", "rpg", "modding"}}

	score, factors := ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 60.0, factors.SharedInterests) // 2 shared x 30
	assert.Equal(t, 60.0, score)
}

func TestScoreCompatibilityInterestCap(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g"}
	_, factors := ScoreCompatibility(
		&CandidateProfile{Interests: many},
		&CandidateProfile{Interests: many},
	)
	assert.Equal(t, 150.0, factors.SharedInterests) // 7 shared would be 210, capped
}

func TestScoreCompatibilityDuplicatesCountOnce(t *testing.T) {
	viewer := &CandidateProfile{Platforms: []string{"pc", "pc", "pc"}}
	candidate := &CandidateProfile{Platforms: []string{"pc", "pc"}}

	_, factors := ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 20.0, factors.SharedPlatforms)
}

func TestScoreCompatibilityPlayStyle(t *testing.T) {
	viewer := &CandidateProfile{PlayStyle: strPtr("competitive")}

	_, factors := ScoreCompatibility(viewer, &CandidateProfile{PlayStyle: strPtr("competitive")})
	assert.Equal(t, 50.0, factors.PlayStyleMatch)

	_, factors = ScoreCompatibility(viewer, &CandidateProfile{PlayStyle: strPtr("casual")})
	assert.Equal(t, 0.0, factors.PlayStyleMatch)

	// An undeclared play style never earns the bonus.
	_, factors = ScoreCompatibility(viewer, &CandidateProfile{})
	assert.Equal(t, 0.0, factors.PlayStyleMatch)
}

func TestScoreCompatibilitySkillProximity(t *testing.T) {
	tests := []struct {
		name       string
		viewer     *string
		candidate  *string
		wantPoints float64
	}{
		{"identical", strPtr("competitive"), strPtr("competitive"), 40},
		{"one apart up", strPtr("casual"), strPtr("intermediate"), 20},
		{"one apart down", strPtr("intermediate"), strPtr("casual"), 20},
		{"two apart", strPtr("beginner"), strPtr("intermediate"), 0},
		{"extremes", strPtr("beginner"), strPtr("professional"), 0},
		{"unknown treated as middle", strPtr("grandmaster"), strPtr("intermediate"), 40},
		{"viewer undeclared", nil, strPtr("casual"), 0},
		{"candidate undeclared", strPtr("casual"), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, factors := ScoreCompatibility(
				&CandidateProfile{SkillLevel: tt.viewer},
				&CandidateProfile{SkillLevel: tt.candidate},
			)
			assert.Equal(t, tt.wantPoints, factors.SkillProximity)
		})
	}
}

func TestScoreCompatibilityVoiceChat(t *testing.T) {
	tests := []struct {
		name       string
		viewer     *string
		candidate  *string
		wantPoints float64
	}{
		{"both prefer voice", strPtr("voice_preferred"), strPtr("voice_always"), 30},
		{"text only with sometimes", strPtr("text_only"), strPtr("voice_sometimes"), 30},
		{"text only vs always voice", strPtr("text_only"), strPtr("voice_always"), 0},
		{"always voice vs text only", strPtr("voice_always"), strPtr("text_only"), 0},
		{"candidate undeclared", strPtr("voice_preferred"), nil, 0},
		{"viewer undeclared", nil, strPtr("voice_preferred"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, factors := ScoreCompatibility(
				&CandidateProfile{VoiceChat: tt.viewer},
				&CandidateProfile{VoiceChat: tt.candidate},
			)
			assert.Equal(t, tt.wantPoints, factors.VoiceChatCompatible)
		})
	}
}

func TestScoreCompatibilityScheduleOverlap(t *testing.T) {
	viewer := &CandidateProfile{
		TimezoneOffset: intPtr(0),
		AvailableDays:  []string{"fri", "sat"},
	}
	candidate := &CandidateProfile{
		TimezoneOffset: intPtr(3),
		AvailableDays:  []string{"sat", "sun"},
	}

	_, factors := ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 35.0, factors.ScheduleOverlap)

	// 5 hours apart: no bonus even with a shared day.
	candidate.TimezoneOffset = intPtr(5)
	_, factors = ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 0.0, factors.ScheduleOverlap)

	// Missing timezone on either side: no bonus.
	candidate.TimezoneOffset = nil
	_, factors = ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 0.0, factors.ScheduleOverlap)
}

func TestScoreCompatibilityStatusBonuses(t *testing.T) {
	_, factors := ScoreCompatibility(&CandidateProfile{}, &CandidateProfile{
		IsOnline:   true,
		IsVerified: true,
	})
	assert.Equal(t, 15.0, factors.OnlineNow)
	assert.Equal(t, 10.0, factors.Verified)

	// The viewer's own status never contributes.
	_, factors = ScoreCompatibility(&CandidateProfile{IsOnline: true, IsVerified: true}, &CandidateProfile{})
	assert.Equal(t, 0.0, factors.OnlineNow)
	assert.Equal(t, 0.0, factors.Verified)
}

func TestScoreCompatibilityTotalIsFactorSum(t *testing.T) {
	viewer := &CandidateProfile{
		Interests:      []string{"raids", "pvp"},
		Platforms:      []string{"pc", "ps5"},
		Genres:         []string{"mmo", "fps", "moba"},
		LookingFor:     []string{"duo_partner", "guild"},
		PlayStyle:      strPtr("hardcore"),
		SkillLevel:     strPtr("competitive"),
		VoiceChat:      strPtr("voice_always"),
		TimezoneOffset: intPtr(-5),
		AvailableDays:  []string{"sat", "sun"},
	}
	candidate := &CandidateProfile{
		Interests:      []string{"pvp", "crafting"},
		Platforms:      []string{"pc"},
		Genres:         []string{"mmo", "moba"},
		LookingFor:     []string{"guild"},
		PlayStyle:      strPtr("hardcore"),
		SkillLevel:     strPtr("professional"),
		VoiceChat:      strPtr("voice_preferred"),
		TimezoneOffset: intPtr(-8),
		AvailableDays:  []string{"sun"},
		IsOnline:       true,
		IsVerified:     true,
	}

	score, f := ScoreCompatibility(viewer, candidate)
	assert.Equal(t, 30.0, f.SharedInterests)
	assert.Equal(t, 20.0, f.SharedPlatforms)
	assert.Equal(t, 50.0, f.PlayStyleMatch)
	assert.Equal(t, 20.0, f.SkillProximity)
	assert.Equal(t, 25.0, f.LookingForMatch)
	assert.Equal(t, 30.0, f.VoiceChatCompatible)
	assert.Equal(t, 20.0, f.SharedGenres)
	assert.Equal(t, 35.0, f.ScheduleOverlap)
	assert.Equal(t, 15.0, f.OnlineNow)
	assert.Equal(t, 10.0, f.Verified)
	assert.Equal(t, 255.0, score)
}

func TestScoreCompatibilityDeterministic(t *testing.T) {
	viewer := testViewer()
	candidate := testCandidate()
	first, _ := ScoreCompatibility(viewer, candidate)
	for i := 0; i < 10; i++ {
		again, _ := ScoreCompatibility(viewer, candidate)
		assert.Equal(t, first, again)
	}
}
