package candidate

// Experience levels the model may assign in its analysis.
const (
	LevelJunior = "Junior"
	LevelMid    = "Mid-level"
	LevelSenior = "Senior"
	LevelExpert = "Expert"
)

// Defaults substituted during normalization.
const (
	DefaultName           = "Unknown"
	DefaultPosition       = "Not specified"
	DefaultRecommendation = "No analysis available"
)

// IsExperienceLevel reports whether s is one of the recognized levels.
func IsExperienceLevel(s string) bool {
	switch s {
	case LevelJunior, LevelMid, LevelSenior, LevelExpert:
		return true
	}
	return false
}

// Education is one entry from the EDUCATION section.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
	Field       string `json:"field,omitempty"`
}

// Work is one entry from the WORK section.
type Work struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Analysis is the model's assessment of the candidate.
type Analysis struct {
	SkillsMatch     int      `json:"skills_match"`
	ExperienceLevel string   `json:"experience_level"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendation  string   `json:"recommendation"`
	KeyHighlights   []string `json:"key_highlights"`
}

// DefaultAnalysis returns the analysis used when the model provided none.
func DefaultAnalysis() Analysis {
	return Analysis{
		ExperienceLevel: LevelMid,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendation:  DefaultRecommendation,
		KeyHighlights:   []string{},
	}
}

// Candidate is the validated, fully-populated form of a parsed record. Every
// field holds a concrete value, so consumers never branch on presence. Score
// and Analysis.SkillsMatch are within [0,100] and Experience is non-negative.
// Identity and tenancy are assigned by the persistence layer, not here.
type Candidate struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Position   string      `json:"position"`
	Experience int         `json:"experience"`
	Score      int         `json:"score"`
	Summary    string      `json:"summary"`
	Skills     []string    `json:"skills"`
	Education  []Education `json:"education"`
	Work       []Work      `json:"work_experience"`
	Analysis   Analysis    `json:"analysis"`
}
