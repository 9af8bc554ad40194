package catalog

// Terrain values a shoe can be built for.
const (
	TerrainRoad      = "road"
	TerrainTrail     = "trail"
	TerrainTrack     = "track"
	TerrainTreadmill = "treadmill"
	TerrainMixed     = "mixed"
)

// Support classifications.
const (
	SupportNeutral       = "neutral"
	SupportStability     = "stability"
	SupportMotionControl = "motion_control"
)

// Gender tags. GenderUnisex matches everyone.
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderUnisex = "unisex"
)

// Offer is a merchant-specific listing for a shoe, distinct from MSRP.
type Offer struct {
	Merchant  string  `json:"merchant"`
	URL       string  `json:"url"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price,omitempty"`
	InStock   bool    `json:"in_stock"`
}

// EffectivePrice returns the sale price when one is set, the list price
// otherwise.
func (o Offer) EffectivePrice() float64 {
	if o.SalePrice > 0 && o.SalePrice < o.Price {
		return o.SalePrice
	}
	return o.Price
}

// Shoe is the read-only projection of a catalog entry used for scoring and
// result assembly. A zero numeric field means the attribute is unknown.
type Shoe struct {
	ID              string   `json:"id"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Gender          string   `json:"gender"`
	Terrain         string   `json:"terrain"`
	Support         string   `json:"support,omitempty"`
	Category        string   `json:"category"`
	WeightOz        float64  `json:"weight_oz,omitempty"`
	DropMm          float64  `json:"drop_mm,omitempty"`
	HeelStackMm     float64  `json:"heel_stack_mm,omitempty"`
	ForefootStackMm float64  `json:"forefoot_stack_mm,omitempty"`
	CushionLevel    string   `json:"cushion_level,omitempty"`
	CarbonPlate     bool     `json:"carbon_plate,omitempty"`
	Rocker          bool     `json:"rocker,omitempty"`
	WidthOptions    []string `json:"width_options,omitempty"`
	KeyFeatures     []string `json:"key_features,omitempty"`
	MSRP            float64  `json:"msrp,omitempty"`
	ImageURLs       []string `json:"image_urls,omitempty"`
	Colorway        string   `json:"colorway,omitempty"`
	Active          bool     `json:"active"`
	Offers          []Offer  `json:"offers,omitempty"`
}

// FullName returns the display name used in prompts and reasoning text.
func (s *Shoe) FullName() string {
	if s.Brand == "" {
		return s.Model
	}
	return s.Brand + " " + s.Model
}

// HasWidthOption reports whether the shoe is offered in the given width.
func (s *Shoe) HasWidthOption(width string) bool {
	for _, w := range s.WidthOptions {
		if w == width {
			return true
		}
	}
	return false
}

// InStockOffers returns the subset of offers currently purchasable.
func (s *Shoe) InStockOffers() []Offer {
	out := make([]Offer, 0, len(s.Offers))
	for _, o := range s.Offers {
		if o.InStock {
			out = append(out, o)
		}
	}
	return out
}

// Shoes is a catalog snapshot slice with small lookup helpers.
type Shoes struct {
	Items []*Shoe
}

func (s *Shoes) Len() int {
	return len(s.Items)
}

func (s *Shoes) FindByID(id string) *Shoe {
	for _, shoe := range s.Items {
		if shoe.ID == id {
			return shoe
		}
	}
	return nil
}
