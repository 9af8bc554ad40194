package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/ai"
	"github.com/strideware/fitmatch/internal/profile"
	"github.com/strideware/fitmatch/internal/scoring"
	"github.com/strideware/fitmatch/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const (
	// DefaultOverlayTimeout bounds the single provider call. Generous enough
	// for job-style providers that poll, still a hard ceiling per request.
	DefaultOverlayTimeout = 90 * time.Second

	defaultMaxLogLength = 200
)

// Outcome reports which path the overlay took, so callers and tests can
// assert refinement vs. fallback without poking at incidental nil fields.
type Outcome struct {
	// Applied is true only when the provider response was fully parsed and
	// its ordering applied.
	Applied bool

	// FallbackReason explains why the heuristic order was kept. Empty when
	// Applied is true.
	FallbackReason string

	// Reasonings maps shoe ID to the provider's per-item reasoning. Nil on
	// the fallback path.
	Reasonings map[string]string
}

// Overlay optionally re-ranks the heuristic short-list through an external
// text-generation provider. Every failure mode resolves to the heuristic
// order; Refine never returns an error.
type Overlay struct {
	generator ai.Generator
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

func NewOverlay(generator ai.Generator, timeout time.Duration, maxLogLength int, logger *zap.Logger) *Overlay {
	if generator == nil {
		generator = ai.Disabled{}
	}
	if timeout <= 0 {
		timeout = DefaultOverlayTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Overlay{
		generator: generator,
		timeout:   timeout,
		maxLogLen: maxLogLength,
		logger:    logger,
	}
}

// promptCandidate is the candidate view serialized into the prompt. Indices
// are 1-based and referenced by the provider's response.
type promptCandidate struct {
	Index          int      `json:"index"`
	Name           string   `json:"name"`
	Terrain        string   `json:"terrain,omitempty"`
	Support        string   `json:"support,omitempty"`
	WeightOz       float64  `json:"weight_oz,omitempty"`
	DropMm         float64  `json:"drop_mm,omitempty"`
	HeelStackMm    float64  `json:"heel_stack_mm,omitempty"`
	CushionLevel   string   `json:"cushion_level,omitempty"`
	CarbonPlate    bool     `json:"carbon_plate,omitempty"`
	WidthOptions   []string `json:"width_options,omitempty"`
	MSRP           float64  `json:"msrp,omitempty"`
	HeuristicScore float64  `json:"heuristic_score"`
}

type refinementRanking struct {
	Rank      int     `json:"rank" mapstructure:"rank"`
	ShoeIndex int     `json:"shoe_index" mapstructure:"shoe_index"`
	ShoeName  string  `json:"shoe_name" mapstructure:"shoe_name"`
	Score     float64 `json:"score" mapstructure:"score"`
	Reasoning string  `json:"reasoning" mapstructure:"reasoning"`
}

type refinementDisqualification struct {
	ShoeIndex int    `json:"shoe_index" mapstructure:"shoe_index"`
	Reason    string `json:"reason" mapstructure:"reason"`
}

type refinementResponse struct {
	Rankings     []refinementRanking          `mapstructure:"rankings"`
	Disqualified []refinementDisqualification `mapstructure:"disqualified"`
}

// Refine sends the heuristic short-list to the provider and applies its
// ordering. On any failure the original order is returned unchanged together
// with an outcome naming the reason.
func (o *Overlay) Refine(ctx context.Context, user *profile.UserProfile, candidates []scoring.Scored) ([]scoring.Scored, Outcome) {
	if len(candidates) == 0 {
		return candidates, Outcome{FallbackReason: "no candidates to refine"}
	}
	if _, disabled := o.generator.(ai.Disabled); disabled {
		return candidates, Outcome{FallbackReason: "provider disabled"}
	}

	prompt, err := o.buildPrompt(user, candidates)
	if err != nil {
		return o.fallback(candidates, fmt.Sprintf("build prompt: %v", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	o.logger.Debug("refinement request",
		zap.Int("candidates", len(candidates)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, o.maxLogLen)),
	)

	raw, err := o.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return o.fallback(candidates, fmt.Sprintf("provider call failed: %v", err))
	}
	if strings.TrimSpace(raw) == "" {
		return o.fallback(candidates, "provider returned empty response")
	}

	o.logger.Debug("refinement response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, o.maxLogLen)),
	)

	parsed, err := parseRefinement(raw)
	if err != nil {
		return o.fallback(candidates, fmt.Sprintf("parse response: %v", err))
	}

	reordered, reasonings := applyRefinement(candidates, parsed)

	o.logger.Info("refinement applied",
		zap.Int("ranked", len(parsed.Rankings)),
		zap.Int("disqualified", len(parsed.Disqualified)),
		zap.Int("final", len(reordered)),
	)

	return reordered, Outcome{Applied: true, Reasonings: reasonings}
}

func (o *Overlay) fallback(candidates []scoring.Scored, reason string) ([]scoring.Scored, Outcome) {
	o.logger.Warn("refinement fallback to heuristic order", zap.String("reason", reason))
	return candidates, Outcome{FallbackReason: reason}
}

func (o *Overlay) buildPrompt(user *profile.UserProfile, candidates []scoring.Scored) (string, error) {
	profileJSON, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	views := make([]promptCandidate, 0, len(candidates))
	for i, c := range candidates {
		views = append(views, promptCandidate{
			Index:          i + 1,
			Name:           c.Shoe.FullName(),
			Terrain:        c.Shoe.Terrain,
			Support:        c.Shoe.Support,
			WeightOz:       c.Shoe.WeightOz,
			DropMm:         c.Shoe.DropMm,
			HeelStackMm:    c.Shoe.HeelStackMm,
			CushionLevel:   c.Shoe.CushionLevel,
			CarbonPlate:    c.Shoe.CarbonPlate,
			WidthOptions:   c.Shoe.WidthOptions,
			MSRP:           c.Shoe.MSRP,
			HeuristicScore: c.Score,
		})
	}

	candidatesJSON, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{PROFILE_JSON}}", string(profileJSON))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES_JSON}}", string(candidatesJSON))
	return prompt, nil
}

// parseRefinement enforces the strict response contract: a JSON object with a
// rankings key. Code fences and stray backticks are tolerated, a missing
// rankings key is not.
func parseRefinement(raw string) (*refinementResponse, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("unmarshal refinement response: %w", err)
	}

	if _, ok := data["rankings"]; !ok {
		return nil, fmt.Errorf("refinement response has no rankings key")
	}

	var parsed refinementResponse
	cfg := &mapstructure.DecoderConfig{
		Result:           &parsed,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode refinement response: %w", err)
	}

	return &parsed, nil
}

// applyRefinement reorders candidates by the provider ranking: ranked items
// first in the given order, then remaining heuristic-ordered candidates not
// disqualified or already placed, truncated to the final list size.
func applyRefinement(candidates []scoring.Scored, parsed *refinementResponse) ([]scoring.Scored, map[string]string) {
	disqualified := make(map[int]bool, len(parsed.Disqualified))
	for _, d := range parsed.Disqualified {
		disqualified[d.ShoeIndex] = true
	}

	placed := make(map[int]bool, len(parsed.Rankings))
	reasonings := make(map[string]string)
	out := make([]scoring.Scored, 0, len(candidates))

	for _, r := range parsed.Rankings {
		idx := r.ShoeIndex
		if idx < 1 || idx > len(candidates) || disqualified[idx] || placed[idx] {
			continue
		}
		placed[idx] = true
		candidate := candidates[idx-1]
		out = append(out, candidate)
		if reason := strings.TrimSpace(r.Reasoning); reason != "" {
			reasonings[candidate.Shoe.ID] = reason
		}
	}

	for i, c := range candidates {
		idx := i + 1
		if placed[idx] || disqualified[idx] {
			continue
		}
		out = append(out, c)
	}

	if len(out) > FinalListSize {
		out = out[:FinalListSize]
	}
	return out, reasonings
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
