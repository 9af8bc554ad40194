package profile

// Category tags supported by the engine.
const (
	CategoryRunning    = "running"
	CategoryBasketball = "basketball"
)

// Foot width values.
const (
	WidthNarrow   = "narrow"
	WidthStandard = "standard"
	WidthWide     = "wide"
)

// Arch types.
const (
	ArchFlat    = "flat"
	ArchNeutral = "neutral"
	ArchHigh    = "high"
)

// Pronation tendencies.
const (
	PronationNeutral = "neutral"
	Overpronation    = "overpronation"
	Underpronation   = "underpronation"
)

// Budget bands. BudgetAny disables budget scoring entirely.
const (
	BudgetUnder100 = "under_100"
	Budget100To150 = "100_150"
	Budget150To200 = "150_200"
	Budget150Plus  = "150_plus"
	BudgetAny      = "any"
)

// Race distances a runner may train for.
const (
	Distance5K       = "5k"
	Distance10K      = "10k"
	DistanceHalf     = "half"
	DistanceMarathon = "marathon"
	DistanceUltra    = "ultra"
)

// FootProfile describes the physical foot characteristics derived from quiz
// answers. It is built once per request and never mutated afterwards.
type FootProfile struct {
	Width     string   `json:"width"`
	Arch      string   `json:"arch"`
	Pronation string   `json:"pronation"`
	Issues    []string `json:"issues,omitempty"`
}

// Preferences holds the stated preferences from the quiz.
type Preferences struct {
	Priorities []string `json:"priorities,omitempty"`
	Budget     string   `json:"budget,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Distances  []string `json:"distances,omitempty"`
	Terrain    string   `json:"terrain,omitempty"`

	// Basketball-only fields. Ignored for the running category.
	Position      string `json:"position,omitempty"`
	CourtType     string `json:"court_type,omitempty"`
	CutPreference string `json:"cut_preference,omitempty"`
}

// UserProfile is the normalized profile consumed by the scoring engine.
type UserProfile struct {
	Category string      `json:"category"`
	Foot     FootProfile `json:"foot"`
	Prefs    Preferences `json:"preferences"`

	// PriorShoes is informational only. It is carried into prompts and
	// persisted payloads but does not influence heuristic scoring.
	PriorShoes []string `json:"prior_shoes,omitempty"`
}

// HasIssue reports whether the given condition was flagged in the quiz.
func (p *UserProfile) HasIssue(issue string) bool {
	for _, i := range p.Foot.Issues {
		if i == issue {
			return true
		}
	}
	return false
}
