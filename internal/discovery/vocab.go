package discovery

// Closed vocabularies for the string-typed profile attributes. Raw
// strings from clients are checked against these at the API boundary;
// the engine itself only consults the ordinal table below.

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillCasual       SkillLevel = "casual"
	SkillIntermediate SkillLevel = "intermediate"
	SkillCompetitive  SkillLevel = "competitive"
	SkillProfessional SkillLevel = "professional"
)

// skillRanks maps skill levels onto an ordinal scale used by the
// adjacency scoring. Unknown levels fall back to the middle rank so a
// typo in stored data degrades to a neutral score instead of an error.
var skillRanks = map[SkillLevel]int{
	SkillBeginner:     1,
	SkillCasual:       2,
	SkillIntermediate: 3,
	SkillCompetitive:  4,
	SkillProfessional: 5,
}

const skillRankDefault = 3

// SkillRank returns the ordinal rank for a skill level string.
func SkillRank(level string) int {
	if rank, ok := skillRanks[SkillLevel(level)]; ok {
		return rank
	}
	return skillRankDefault
}

type VoiceChatPreference string

const (
	VoiceTextOnly  VoiceChatPreference = "text_only"
	VoiceSometimes VoiceChatPreference = "voice_sometimes"
	VoicePreferred VoiceChatPreference = "voice_preferred"
	VoiceAlways    VoiceChatPreference = "voice_always"
)

// VoiceChatCompatible reports whether two declared voice preferences
// can coexist in a session. The only incompatible pairing is a
// text-only player with an always-voice player; every other pair works.
func VoiceChatCompatible(a, b string) bool {
	pa, pb := VoiceChatPreference(a), VoiceChatPreference(b)
	if pa == VoiceTextOnly && pb == VoiceAlways {
		return false
	}
	if pa == VoiceAlways && pb == VoiceTextOnly {
		return false
	}
	return true
}

type PlayStyle string

const (
	PlayStyleCasual      PlayStyle = "casual"
	PlayStyleCompetitive PlayStyle = "competitive"
	PlayStyleCooperative PlayStyle = "cooperative"
	PlayStyleSocial      PlayStyle = "social"
	PlayStyleHardcore    PlayStyle = "hardcore"
)

// Weekday tokens for schedule data, Monday first.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
