package discovery

// RejectReason identifies the first predicate a candidate failed.
// Used for diagnostics and the per-reason reject metrics.
type RejectReason string

const (
	RejectNone             RejectReason = ""
	RejectVerification     RejectReason = "verification"
	RejectOnline           RejectReason = "online"
	RejectDistance         RejectReason = "distance"
	RejectAge              RejectReason = "age"
	RejectHeight           RejectReason = "height"
	RejectEducation        RejectReason = "education"
	RejectReligion         RejectReason = "religion"
	RejectRelationshipGoal RejectReason = "relationship_goal"
	RejectSmoking          RejectReason = "smoking"
	RejectDrinking         RejectReason = "drinking"
	RejectDiet             RejectReason = "diet"
	RejectPets             RejectReason = "pets"
	RejectExercise         RejectReason = "exercise"
	RejectPlatforms        RejectReason = "platforms"
	RejectGenres           RejectReason = "genres"
	RejectSkillLevel       RejectReason = "skill_level"
	RejectPlayStyle        RejectReason = "play_style"
	RejectLookingFor       RejectReason = "looking_for"
	RejectVoiceChat        RejectReason = "voice_chat"
	RejectRegion           RejectReason = "region"
	RejectCommonInterest   RejectReason = "common_interest"
	RejectScheduleOverlap  RejectReason = "schedule_overlap"
)

// FilterOutcome is the result of evaluating one candidate against one
// criteria. Passed is the only field most callers look at; Reason
// carries the first failing predicate for diagnostics.
type FilterOutcome struct {
	Passed bool
	Reason RejectReason
}

func pass() FilterOutcome { return FilterOutcome{Passed: true} }
func reject(reason RejectReason) FilterOutcome { return FilterOutcome{Reason: reason} }

// EvaluateCandidate runs the filter predicate chain against a single
// candidate. Predicates short-circuit in a fixed, most-selective-first
// order so the cheap boolean checks cull the batch before distance math
// runs. Pure; no I/O.
//
// Missing-attribute policy: a candidate without coordinates passes the
// distance step (unshared location must not hide a profile), but a
// candidate missing any attribute targeted by an active set filter or
// the height range is rejected (declared absence is not a wildcard).
func EvaluateCandidate(candidate, viewer *CandidateProfile, criteria *FilterCriteria) FilterOutcome {
	// 1. Verification
	if criteria.VerifiedOnly && !candidate.IsVerified {
		return reject(RejectVerification)
	}

	// 2. Online
	if criteria.OnlineOnly && !candidate.IsOnline {
		return reject(RejectOnline)
	}

	// 3. Distance. Only evaluable when both sides have shared location.
	if criteria.MaxDistanceMiles > 0 && viewer.Location != nil && candidate.Location != nil {
		if DistanceMiles(*viewer.Location, *candidate.Location) > criteria.MaxDistanceMiles {
			return reject(RejectDistance)
		}
	}

	// 4. Age
	if candidate.Age < criteria.MinAge || candidate.Age > criteria.MaxAge {
		return reject(RejectAge)
	}

	// 5. Height. An active range requires a declared height.
	if criteria.MinHeightCM != nil || criteria.MaxHeightCM != nil {
		if candidate.HeightCM == nil {
			return reject(RejectHeight)
		}
		if criteria.MinHeightCM != nil && *candidate.HeightCM < *criteria.MinHeightCM {
			return reject(RejectHeight)
		}
		if criteria.MaxHeightCM != nil && *candidate.HeightCM > *criteria.MaxHeightCM {
			return reject(RejectHeight)
		}
	}

	// 6. Set-membership filters. Single-valued attributes must be a
	// member of the declared set; multi-valued attributes must
	// intersect it.
	scalarChecks := []struct {
		active []string
		value  *string
		reason RejectReason
	}{
		{criteria.Educations, candidate.Education, RejectEducation},
		{criteria.Religions, candidate.Religion, RejectReligion},
		{criteria.RelationshipGoals, candidate.RelationshipGoal, RejectRelationshipGoal},
		{criteria.Smoking, candidate.Smoking, RejectSmoking},
		{criteria.Drinking, candidate.Drinking, RejectDrinking},
		{criteria.Diets, candidate.Diet, RejectDiet},
		{criteria.Pets, candidate.Pets, RejectPets},
		{criteria.Exercise, candidate.Exercise, RejectExercise},
		{criteria.SkillLevels, candidate.SkillLevel, RejectSkillLevel},
		{criteria.PlayStyles, candidate.PlayStyle, RejectPlayStyle},
		{criteria.VoiceChat, candidate.VoiceChat, RejectVoiceChat},
		{criteria.Regions, candidate.Region, RejectRegion},
	}
	for _, check := range scalarChecks {
		if len(check.active) == 0 {
			continue
		}
		if check.value == nil || !contains(check.active, *check.value) {
			return reject(check.reason)
		}
	}

	setChecks := []struct {
		active []string
		values []string
		reason RejectReason
	}{
		{criteria.Platforms, candidate.Platforms, RejectPlatforms},
		{criteria.Genres, candidate.Genres, RejectGenres},
		{criteria.LookingFor, candidate.LookingFor, RejectLookingFor},
	}
	for _, check := range setChecks {
		if len(check.active) == 0 {
			continue
		}
		if len(check.values) == 0 || !intersects(check.active, check.values) {
			return reject(check.reason)
		}
	}

	// 7. Viewer-relative toggles.
	if criteria.RequireCommonInterest && !intersects(viewer.Interests, candidate.Interests) {
		return reject(RejectCommonInterest)
	}
	if criteria.RequireScheduleOverlap && !schedulesOverlap(viewer, candidate) {
		return reject(RejectScheduleOverlap)
	}

	return pass()
}

// schedulesOverlap reports whether two profiles share at least one
// available day and sit within 4 hours of each other. Profiles missing
// schedule data are still evaluated and simply fail the predicate.
func schedulesOverlap(a, b *CandidateProfile) bool {
	if a.TimezoneOffset == nil || b.TimezoneOffset == nil {
		return false
	}
	diff := *a.TimezoneOffset - *b.TimezoneOffset
	if diff < 0 {
		diff = -diff
	}
	if diff > 4 {
		return false
	}
	return intersects(a.AvailableDays, b.AvailableDays)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if seen[v] {
			return true
		}
	}
	return false
}
