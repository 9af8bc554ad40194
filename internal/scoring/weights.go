package scoring

import "encoding/json"

// Dimension names used across weights, breakdowns and explanations.
const (
	DimBudget     = "budget"
	DimTerrain    = "terrain"
	DimPronation  = "pronation"
	DimIssues     = "issues"
	DimWidth      = "width"
	DimArch       = "arch"
	DimPriorities = "priorities"
	DimCushion    = "cushion"
	DimDistance   = "distance"
	DimPosition   = "position"
	DimCourt      = "court"
	DimCut        = "cut"
	DimHistory    = "history"
	DimSentiment  = "sentiment"
)

// Weights is the immutable weight table applied by the combiner. It is
// constructed once (defaults plus config overrides) and injected, so tests and
// experiments can substitute alternate tables without touching shared state.
type Weights struct {
	Budget     float64 `json:"budget" mapstructure:"budget"`
	Terrain    float64 `json:"terrain" mapstructure:"terrain"`
	Pronation  float64 `json:"pronation" mapstructure:"pronation"`
	Issues     float64 `json:"issues" mapstructure:"issues"`
	Width      float64 `json:"width" mapstructure:"width"`
	Arch       float64 `json:"arch" mapstructure:"arch"`
	Priorities float64 `json:"priorities" mapstructure:"priorities"`
	Cushion    float64 `json:"cushion" mapstructure:"cushion"`
	Distance   float64 `json:"distance" mapstructure:"distance"`
	Position   float64 `json:"position" mapstructure:"position"`

	// History is reserved for prior-shoe affinity once the quiz starts
	// collecting usable shoe history. No active dimension consumes it yet.
	History float64 `json:"history" mapstructure:"history"`

	// Sentiment backs the constant placeholder dimension kept until
	// review-derived signals land in the catalog.
	Sentiment float64 `json:"sentiment" mapstructure:"sentiment"`
}

func DefaultWeights() Weights {
	return Weights{
		Budget:     2.5,
		Terrain:    2.0,
		Pronation:  1.8,
		Issues:     1.8,
		Width:      1.5,
		Arch:       1.3,
		Priorities: 1.3,
		Cushion:    1.2,
		Distance:   1.0,
		Position:   1.0,
		History:    0.8,
		Sentiment:  0.5,
	}
}

// ForDimension returns the weight for a dimension name. Dimensions without an
// explicit entry (court, cut) default to 1.0.
func (w Weights) ForDimension(name string) float64 {
	switch name {
	case DimBudget:
		return w.Budget
	case DimTerrain:
		return w.Terrain
	case DimPronation:
		return w.Pronation
	case DimIssues:
		return w.Issues
	case DimWidth:
		return w.Width
	case DimArch:
		return w.Arch
	case DimPriorities:
		return w.Priorities
	case DimCushion:
		return w.Cushion
	case DimDistance:
		return w.Distance
	case DimPosition:
		return w.Position
	case DimHistory:
		return w.History
	case DimSentiment:
		return w.Sentiment
	default:
		return 1.0
	}
}

// Snapshot serializes the table for the persisted audit record.
func (w Weights) Snapshot() json.RawMessage {
	b, _ := json.Marshal(w)
	return b
}
