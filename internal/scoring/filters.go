package scoring

import (
	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
)

// Filter represents a single candidate filtering step.
type Filter interface {
	Name() string
	Apply(user *profile.UserProfile, shoes *catalog.Shoes) (*catalog.Shoes, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// DefaultFilters returns the filter chain applied before scoring: active
// items only, gender-compatible, terrain-compatible.
func DefaultFilters() []Filter {
	return []Filter{
		activeFilter{},
		genderFilter{},
		terrainFilter{},
	}
}

// RunFilters executes the filters sequentially, logging the per-step counts.
func RunFilters(filters []Filter, user *profile.UserProfile, shoes *catalog.Shoes, logger *zap.Logger) *catalog.Shoes {
	for _, f := range filters {
		next, info := f.Apply(user, shoes)
		if logger != nil {
			logger.Debug("candidate filter step",
				zap.String("name", f.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
		shoes = next
	}
	return shoes
}

type activeFilter struct{}

func (activeFilter) Name() string { return "active" }

func (activeFilter) Apply(_ *profile.UserProfile, shoes *catalog.Shoes) (*catalog.Shoes, Step) {
	return keep(shoes, func(s *catalog.Shoe) bool {
		return s.Active
	})
}

type genderFilter struct{}

func (genderFilter) Name() string { return "gender" }

func (genderFilter) Apply(user *profile.UserProfile, shoes *catalog.Shoes) (*catalog.Shoes, Step) {
	gender := user.Prefs.Gender
	if gender == "" {
		return shoes, Step{Initial: shoes.Len(), Left: shoes.Len()}
	}
	return keep(shoes, func(s *catalog.Shoe) bool {
		return s.Gender == gender || s.Gender == catalog.GenderUnisex || s.Gender == ""
	})
}

type terrainFilter struct{}

func (terrainFilter) Name() string { return "terrain" }

func (terrainFilter) Apply(user *profile.UserProfile, shoes *catalog.Shoes) (*catalog.Shoes, Step) {
	terrain := user.Prefs.Terrain
	// Treadmill runners shop the road catalog.
	if terrain == catalog.TerrainTreadmill {
		terrain = catalog.TerrainRoad
	}
	if terrain == "" || terrain == catalog.TerrainMixed {
		return shoes, Step{Initial: shoes.Len(), Left: shoes.Len()}
	}
	return keep(shoes, func(s *catalog.Shoe) bool {
		return s.Terrain == terrain || s.Terrain == catalog.TerrainMixed || s.Terrain == ""
	})
}

func keep(shoes *catalog.Shoes, match func(*catalog.Shoe) bool) (*catalog.Shoes, Step) {
	initial := shoes.Len()
	out := &catalog.Shoes{Items: make([]*catalog.Shoe, 0, initial)}
	for _, s := range shoes.Items {
		if match(s) {
			out.Items = append(out.Items, s)
		}
	}
	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}
}
