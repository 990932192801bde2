package discovery

// DTOs for API requests. Vocabulary and range validation happens here,
// at the boundary; the engine receives already-valid criteria.

type CriteriaDTO struct {
	MinAge           int     `json:"min_age" validate:"required,min=18,max=120"`
	MaxAge           int     `json:"max_age" validate:"required,min=18,max=120,gtefield=MinAge"`
	MinHeightCM      *int    `json:"min_height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	MaxHeightCM      *int    `json:"max_height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	MaxDistanceMiles float64 `json:"max_distance_miles" validate:"min=0,max=5000"`

	VerifiedOnly           bool `json:"verified_only"`
	OnlineOnly             bool `json:"online_only"`
	RequireCommonInterest  bool `json:"require_common_interest"`
	RequireScheduleOverlap bool `json:"require_schedule_overlap"`

	Educations        []string `json:"educations,omitempty" validate:"omitempty,max=10,dive,min=1"`
	Religions         []string `json:"religions,omitempty" validate:"omitempty,max=10,dive,min=1"`
	RelationshipGoals []string `json:"relationship_goals,omitempty" validate:"omitempty,max=10,dive,min=1"`
	Smoking           []string `json:"smoking,omitempty" validate:"omitempty,max=5,dive,min=1"`
	Drinking          []string `json:"drinking,omitempty" validate:"omitempty,max=5,dive,min=1"`
	Diets             []string `json:"diets,omitempty" validate:"omitempty,max=10,dive,min=1"`
	Pets              []string `json:"pets,omitempty" validate:"omitempty,max=10,dive,min=1"`
	Exercise          []string `json:"exercise,omitempty" validate:"omitempty,max=5,dive,min=1"`
	Platforms         []string `json:"platforms,omitempty" validate:"omitempty,max=10,dive,min=1"`
	Genres            []string `json:"genres,omitempty" validate:"omitempty,max=20,dive,min=1"`
	SkillLevels       []string `json:"skill_levels,omitempty" validate:"omitempty,max=5,dive,oneof=beginner casual intermediate competitive professional"`
	PlayStyles        []string `json:"play_styles,omitempty" validate:"omitempty,max=5,dive,oneof=casual competitive cooperative social hardcore"`
	LookingFor        []string `json:"looking_for,omitempty" validate:"omitempty,max=10,dive,min=1"`
	VoiceChat         []string `json:"voice_chat,omitempty" validate:"omitempty,max=4,dive,oneof=text_only voice_sometimes voice_preferred voice_always"`
	Regions           []string `json:"regions,omitempty" validate:"omitempty,max=10,dive,min=1"`
}

// ToCriteria converts a validated DTO to the domain type.
func (d *CriteriaDTO) ToCriteria() *FilterCriteria {
	return &FilterCriteria{
		MinAge:                 d.MinAge,
		MaxAge:                 d.MaxAge,
		MinHeightCM:            d.MinHeightCM,
		MaxHeightCM:            d.MaxHeightCM,
		MaxDistanceMiles:       d.MaxDistanceMiles,
		VerifiedOnly:           d.VerifiedOnly,
		OnlineOnly:             d.OnlineOnly,
		RequireCommonInterest:  d.RequireCommonInterest,
		RequireScheduleOverlap: d.RequireScheduleOverlap,
		Educations:             d.Educations,
		Religions:              d.Religions,
		RelationshipGoals:      d.RelationshipGoals,
		Smoking:                d.Smoking,
		Drinking:               d.Drinking,
		Diets:                  d.Diets,
		Pets:                   d.Pets,
		Exercise:               d.Exercise,
		Platforms:              d.Platforms,
		Genres:                 d.Genres,
		SkillLevels:            d.SkillLevels,
		PlayStyles:             d.PlayStyles,
		LookingFor:             d.LookingFor,
		VoiceChat:              d.VoiceChat,
		Regions:                d.Regions,
	}
}

type SearchRequestDTO struct {
	// Criteria overrides the viewer's stored criteria for this search
	// when present.
	Criteria *CriteriaDTO `json:"criteria,omitempty"`
	Limit    int          `json:"limit" validate:"min=0,max=100"`
}

type SavePresetDTO struct {
	Name     string       `json:"name" validate:"required,min=1,max=60"`
	Criteria *CriteriaDTO `json:"criteria" validate:"required"`
}

type SearchResponseDTO struct {
	Matches   []ScoredCandidate `json:"matches"`
	Survivors int               `json:"survivors"`
	Summary   string            `json:"summary"`
}

type CompatibilityResponseDTO struct {
	CandidateID string       `json:"candidate_id"`
	Score       float64      `json:"score"`
	Factors     ScoreFactors `json:"factors"`
}
