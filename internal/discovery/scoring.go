package discovery

// Per-factor points and caps for the compatibility score. The caps
// bound any one factor's influence; the total has no fixed ceiling and
// is only comparable within a single ranking call.
const (
	pointsPerSharedInterest = 30
	capSharedInterests      = 150

	pointsPerSharedPlatform = 20
	capSharedPlatforms      = 60

	pointsPlayStyleMatch = 50

	pointsSkillIdentical = 40
	pointsSkillAdjacent  = 20

	pointsPerLookingFor = 25
	capLookingFor       = 75

	pointsVoiceCompatible = 30

	pointsPerSharedGenre = 10
	capSharedGenres      = 50

	pointsScheduleOverlap = 35
	pointsOnlineNow       = 15
	pointsVerified        = 10
)

// ScoreCompatibility computes the weighted compatibility score for a
// (viewer, candidate) pair and the per-factor breakdown. Deterministic
// and pure: identical inputs always produce identical output.
func ScoreCompatibility(viewer, candidate *CandidateProfile) (float64, ScoreFactors) {
	var f ScoreFactors

	f.SharedInterests = cappedOverlap(viewer.Interests, candidate.Interests, pointsPerSharedInterest, capSharedInterests)
	f.SharedPlatforms = cappedOverlap(viewer.Platforms, candidate.Platforms, pointsPerSharedPlatform, capSharedPlatforms)

	if viewer.PlayStyle != nil && candidate.PlayStyle != nil && *viewer.PlayStyle == *candidate.PlayStyle {
		f.PlayStyleMatch = pointsPlayStyleMatch
	}

	if viewer.SkillLevel != nil && candidate.SkillLevel != nil {
		gap := SkillRank(*viewer.SkillLevel) - SkillRank(*candidate.SkillLevel)
		if gap < 0 {
			gap = -gap
		}
		switch gap {
		case 0:
			f.SkillProximity = pointsSkillIdentical
		case 1:
			f.SkillProximity = pointsSkillAdjacent
		}
	}

	f.LookingForMatch = cappedOverlap(viewer.LookingFor, candidate.LookingFor, pointsPerLookingFor, capLookingFor)

	if viewer.VoiceChat != nil && candidate.VoiceChat != nil &&
		VoiceChatCompatible(*viewer.VoiceChat, *candidate.VoiceChat) {
		f.VoiceChatCompatible = pointsVoiceCompatible
	}

	f.SharedGenres = cappedOverlap(viewer.Genres, candidate.Genres, pointsPerSharedGenre, capSharedGenres)

	if schedulesOverlap(viewer, candidate) {
		f.ScheduleOverlap = pointsScheduleOverlap
	}

	if candidate.IsOnline {
		f.OnlineNow = pointsOnlineNow
	}
	if candidate.IsVerified {
		f.Verified = pointsVerified
	}

	total := f.SharedInterests + f.SharedPlatforms + f.PlayStyleMatch +
		f.SkillProximity + f.LookingForMatch + f.VoiceChatCompatible +
		f.SharedGenres + f.ScheduleOverlap + f.OnlineNow + f.Verified

	return total, f
}

// cappedOverlap scores the shared items between two sets at a fixed
// rate per item, bounded by limit. Duplicate entries count once.
func cappedOverlap(a, b []string, perItem, limit float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	shared := 0
	for _, v := range b {
		if seen[v] {
			shared++
			seen[v] = false
		}
	}
	score := float64(shared) * perItem
	if score > limit {
		return limit
	}
	return score
}
