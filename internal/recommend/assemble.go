package recommend

import (
	"math"
	"sort"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
	"github.com/strideware/fitmatch/internal/scoring"
)

const (
	// FinalListSize caps the returned ranking.
	FinalListSize = 5

	// maxBuyLinks caps the merchant offers attached per item.
	maxBuyLinks = 5
)

// BuyLink is one purchasable offer surfaced on a ranked item.
type BuyLink struct {
	Merchant string  `json:"merchant"`
	URL      string  `json:"url"`
	Price    float64 `json:"price"`
	OnSale   bool    `json:"on_sale"`
}

// KeySpecs carries the spec numbers shown alongside a recommendation.
type KeySpecs struct {
	WeightOz        float64 `json:"weight_oz,omitempty"`
	DropMm          float64 `json:"drop_mm,omitempty"`
	HeelStackMm     float64 `json:"heel_stack_mm,omitempty"`
	ForefootStackMm float64 `json:"forefoot_stack_mm,omitempty"`
	CushionLevel    string  `json:"cushion_level,omitempty"`
	Support         string  `json:"support,omitempty"`
	Terrain         string  `json:"terrain,omitempty"`
	CarbonPlate     bool    `json:"carbon_plate,omitempty"`
	Rocker          bool    `json:"rocker,omitempty"`
}

// RankedItem is one entry of the final recommendation list.
type RankedItem struct {
	Rank       int       `json:"rank"`
	ShoeID     string    `json:"shoe_id"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	FullName   string    `json:"full_name"`
	ImageURLs  []string  `json:"image_urls,omitempty"`
	Colorway   string    `json:"colorway,omitempty"`
	MSRP       float64   `json:"msrp,omitempty"`
	PriceMin   float64   `json:"price_min,omitempty"`
	PriceMax   float64   `json:"price_max,omitempty"`
	PrimaryURL string    `json:"primary_url,omitempty"`
	Specs      KeySpecs  `json:"specs"`
	Score      float64   `json:"score"`
	Percentage int       `json:"percentage"`
	Reasoning  string    `json:"reasoning"`
	FitNotes   FitNotes  `json:"fit_notes"`
	BuyLinks   []BuyLink `json:"buy_links,omitempty"`
}

// DisqualifiedItem is reserved for future "not recommended" reporting. The
// slot is always emitted, currently empty.
type DisqualifiedItem struct {
	ShoeID string `json:"shoe_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the final recommendation payload.
type Result struct {
	Items          []RankedItem       `json:"items"`
	NotRecommended []DisqualifiedItem `json:"not_recommended"`
}

// Assemble turns the refined short-list into the final result: merges offers,
// computes price ranges, attaches explanations and truncates to the final
// list size.
func Assemble(candidates []scoring.Scored, user *profile.UserProfile, outcome Outcome) *Result {
	result := &Result{
		Items:          make([]RankedItem, 0, FinalListSize),
		NotRecommended: []DisqualifiedItem{},
	}

	for i, c := range candidates {
		if i >= FinalListSize {
			break
		}
		result.Items = append(result.Items, assembleItem(i+1, c, user, outcome))
	}
	return result
}

func assembleItem(rank int, c scoring.Scored, user *profile.UserProfile, outcome Outcome) RankedItem {
	shoe := c.Shoe
	links := buyLinks(shoe)
	priceMin, priceMax := priceRange(links, shoe.MSRP)

	primaryURL := ""
	if len(links) > 0 {
		primaryURL = links[0].URL
	}

	return RankedItem{
		Rank:       rank,
		ShoeID:     shoe.ID,
		Brand:      shoe.Brand,
		Model:      shoe.Model,
		FullName:   shoe.FullName(),
		ImageURLs:  shoe.ImageURLs,
		Colorway:   shoe.Colorway,
		MSRP:       shoe.MSRP,
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		PrimaryURL: primaryURL,
		Specs: KeySpecs{
			WeightOz:        shoe.WeightOz,
			DropMm:          shoe.DropMm,
			HeelStackMm:     shoe.HeelStackMm,
			ForefootStackMm: shoe.ForefootStackMm,
			CushionLevel:    shoe.CushionLevel,
			Support:         shoe.Support,
			Terrain:         shoe.Terrain,
			CarbonPlate:     shoe.CarbonPlate,
			Rocker:          shoe.Rocker,
		},
		Score:      c.Score,
		Percentage: int(math.Round(c.Score * 100)),
		Reasoning:  combineReasoning(shoe, user, outcome),
		FitNotes:   BuildFitNotes(shoe, user),
		BuyLinks:   links,
	}
}

// buyLinks returns the in-stock offers sorted ascending by effective price,
// capped at maxBuyLinks. The cheapest one doubles as the primary link.
func buyLinks(shoe *catalog.Shoe) []BuyLink {
	offers := shoe.InStockOffers()
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].EffectivePrice() < offers[j].EffectivePrice()
	})

	if len(offers) > maxBuyLinks {
		offers = offers[:maxBuyLinks]
	}

	links := make([]BuyLink, 0, len(offers))
	for _, o := range offers {
		links = append(links, BuyLink{
			Merchant: o.Merchant,
			URL:      o.URL,
			Price:    o.EffectivePrice(),
			OnSale:   o.SalePrice > 0 && o.SalePrice < o.Price,
		})
	}
	return links
}

// priceRange computes the current min/max price across offers, falling back
// to MSRP when no offer is purchasable.
func priceRange(links []BuyLink, msrp float64) (float64, float64) {
	if len(links) == 0 {
		return msrp, msrp
	}
	min, max := links[0].Price, links[0].Price
	for _, l := range links[1:] {
		if l.Price < min {
			min = l.Price
		}
		if l.Price > max {
			max = l.Price
		}
	}
	return min, max
}
