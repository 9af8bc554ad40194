package profile

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Issue flags that double as foot-shape hints.
const (
	IssueWideFeet          = "wide_feet"
	IssueNarrowFeet        = "narrow_feet"
	IssueFlatFeet          = "flat_feet"
	IssueHighArches        = "high_arches"
	IssueOverpronation     = "overpronation"
	IssueUnderpronation    = "underpronation"
	IssuePlantarFasciitis  = "plantar_fasciitis"
	IssueShinSplints       = "shin_splints"
	IssueKneePain          = "knee_pain"
	IssueAchillesTendinits = "achilles_tendinitis"
)

const maxPriorities = 3

// rawAnswers is the typed shape of the quiz answer map. Unknown keys are
// ignored so the quiz can evolve without breaking extraction.
type rawAnswers struct {
	Issues        []string `json:"issues"`
	Distance      string   `json:"distance"`
	Priorities    []string `json:"priorities"`
	Budget        string   `json:"budget"`
	Experience    string   `json:"experience"`
	Gender        string   `json:"gender"`
	Terrain       string   `json:"terrain"`
	Position      string   `json:"position"`
	CourtType     string   `json:"court_type"`
	CutPreference string   `json:"cut_preference"`
	PriorShoes    []string `json:"prior_shoes"`
}

// Extract converts a raw quiz answer map into a normalized UserProfile.
// Missing or ambiguous answers resolve to neutral defaults, never to errors.
func Extract(category string, answers map[string]any) *UserProfile {
	var raw rawAnswers
	if answers != nil {
		cfg := &mapstructure.DecoderConfig{
			Result:           &raw,
			TagName:          "json",
			WeaklyTypedInput: true,
		}
		if decoder, err := mapstructure.NewDecoder(cfg); err == nil {
			// Undecodable answers are treated the same as absent ones.
			_ = decoder.Decode(answers)
		}
	}

	issues := normalizeAll(raw.Issues)

	p := &UserProfile{
		Category: normalize(category),
		Foot: FootProfile{
			Width:     widthFromIssues(issues),
			Arch:      archFromIssues(issues),
			Pronation: pronationFromIssues(issues),
			Issues:    issues,
		},
		Prefs: Preferences{
			Priorities:    truncate(normalizeAll(raw.Priorities), maxPriorities),
			Budget:        defaultIfEmpty(normalize(raw.Budget), BudgetAny),
			Experience:    normalize(raw.Experience),
			Gender:        normalize(raw.Gender),
			Distances:     expandDistance(normalize(raw.Distance)),
			Terrain:       normalize(raw.Terrain),
			Position:      normalize(raw.Position),
			CourtType:     normalize(raw.CourtType),
			CutPreference: normalize(raw.CutPreference),
		},
		PriorShoes: raw.PriorShoes,
	}

	if p.Category == "" {
		p.Category = CategoryRunning
	}

	return p
}

func widthFromIssues(issues []string) string {
	switch {
	case contains(issues, IssueWideFeet):
		return WidthWide
	case contains(issues, IssueNarrowFeet):
		return WidthNarrow
	default:
		return WidthStandard
	}
}

func archFromIssues(issues []string) string {
	switch {
	case contains(issues, IssueFlatFeet):
		return ArchFlat
	case contains(issues, IssueHighArches):
		return ArchHigh
	default:
		return ArchNeutral
	}
}

func pronationFromIssues(issues []string) string {
	switch {
	case contains(issues, IssueOverpronation):
		return Overpronation
	case contains(issues, IssueUnderpronation):
		return Underpronation
	default:
		return PronationNeutral
	}
}

// expandDistance maps the single-select distance answer to the set of race
// distances the user is likely training for.
func expandDistance(answer string) []string {
	switch answer {
	case "short":
		return []string{Distance5K}
	case "mid":
		return []string{Distance5K, Distance10K, DistanceHalf}
	case "long":
		return []string{DistanceMarathon, DistanceUltra}
	default:
		return []string{Distance5K, Distance10K, DistanceHalf, DistanceMarathon}
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func defaultIfEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
