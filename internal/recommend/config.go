package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

// Criterion names used as keys in weight profiles and detailed scores.
const (
	CriterionAffordability = "affordability"
	CriterionBudget        = "budget"
	CriterionLocation      = "location"
	CriterionBuyerType     = "buyerType"
	CriterionInvestment    = "investment"
	CriterionAmenities     = "amenities"
	CriterionLiquidity     = "liquidity"
)

// criterionOrder fixes the order in which sub-scores are computed and
// their explanations concatenated.
var criterionOrder = []string{
	CriterionAffordability,
	CriterionBudget,
	CriterionLocation,
	CriterionBuyerType,
	CriterionInvestment,
	CriterionAmenities,
	CriterionLiquidity,
}

// WeightProfile maps criterion name to its weight. Criteria absent from
// a profile simply do not participate in that buyer type's score.
type WeightProfile map[string]float64

// LocationPrior carries the market priors for a named metro area, each
// in [0,1]. Areas are matched by case-insensitive substring against the
// listing location, first entry wins.
type LocationPrior struct {
	Area      string  `json:"area"`
	Premium   float64 `json:"premium"`
	Growth    float64 `json:"growth"`
	Liquidity float64 `json:"liquidity"`
}

// Financing holds the loan-model constants behind the affordability
// estimate.
type Financing struct {
	DownPaymentRate float64 `json:"down_payment_rate"`
	AnnualRate      float64 `json:"annual_rate"`
	TermYears       int     `json:"term_years"`
}

// Config is the engine's static policy: weight tables per buyer type,
// location priors, and financing constants. It is read-only once the
// engine is constructed.
type Config struct {
	Weights   map[string]WeightProfile `json:"weights"`
	Locations []LocationPrior          `json:"locations"`
	Financing Financing                `json:"financing"`
}

// DefaultConfig returns the production policy tables. The weight values
// are policy, not tuning artifacts; each profile sums to 1.0 (checked
// by Validate at startup).
func DefaultConfig() Config {
	return Config{
		Weights: map[string]WeightProfile{
			domain.BuyerFirstTime: {
				CriterionAffordability: 0.40,
				CriterionLocation:      0.25,
				CriterionBudget:        0.20,
				CriterionBuyerType:     0.10,
				CriterionAmenities:     0.05,
			},
			domain.BuyerOFW: {
				CriterionAffordability: 0.25,
				CriterionLocation:      0.20,
				CriterionBuyerType:     0.05,
				CriterionInvestment:    0.35,
				CriterionLiquidity:     0.15,
			},
			domain.BuyerInvestor: {
				CriterionAffordability: 0.15,
				CriterionLocation:      0.20,
				CriterionBuyerType:     0.05,
				CriterionInvestment:    0.50,
				CriterionLiquidity:     0.10,
			},
			domain.BuyerUpgrader: {
				CriterionAffordability: 0.25,
				CriterionLocation:      0.30,
				CriterionBudget:        0.10,
				CriterionBuyerType:     0.15,
				CriterionAmenities:     0.20,
			},
		},
		Locations: []LocationPrior{
			{Area: "BGC", Premium: 1.0, Growth: 0.8, Liquidity: 0.95},
			{Area: "Makati", Premium: 0.95, Growth: 0.7, Liquidity: 0.9},
			{Area: "Pasig", Premium: 0.7, Growth: 0.75, Liquidity: 0.75},
			{Area: "Quezon City", Premium: 0.6, Growth: 0.7, Liquidity: 0.7},
			{Area: "Metro Manila", Premium: 0.7, Growth: 0.6, Liquidity: 0.7},
			{Area: "Cebu", Premium: 0.65, Growth: 0.8, Liquidity: 0.7},
			{Area: "Davao", Premium: 0.5, Growth: 0.85, Liquidity: 0.6},
		},
		Financing: Financing{
			DownPaymentRate: 0.20,
			AnnualRate:      0.065,
			TermYears:       15,
		},
	}
}

// defaultLocationPrior applies when a listing location matches no
// configured area.
var defaultLocationPrior = LocationPrior{Premium: 0.4, Growth: 0.4, Liquidity: 0.4}

// LoadConfigFromFile overlays a JSON policy file onto the defaults,
// falling back to defaults on read errors.
func LoadConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("unmarshal engine config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants: every weight profile
// must sum to 1.0 (within epsilon) and carry no negative weights, and
// location priors must stay in [0,1].
func (c Config) Validate() error {
	const eps = 1e-6
	if len(c.Weights) == 0 {
		return fmt.Errorf("no weight profiles configured")
	}
	if _, ok := c.Weights[domain.BuyerFirstTime]; !ok {
		return fmt.Errorf("missing fallback weight profile %q", domain.BuyerFirstTime)
	}
	for buyerType, profile := range c.Weights {
		var sum float64
		for criterion, w := range profile {
			if w < 0 {
				return fmt.Errorf("buyer type %q: negative weight for %q", buyerType, criterion)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > eps {
			return fmt.Errorf("buyer type %q: weights sum to %.4f, want 1.0", buyerType, sum)
		}
	}
	for _, lp := range c.Locations {
		if lp.Area == "" {
			return fmt.Errorf("location prior with empty area")
		}
		for name, v := range map[string]float64{"premium": lp.Premium, "growth": lp.Growth, "liquidity": lp.Liquidity} {
			if v < 0 || v > 1 {
				return fmt.Errorf("area %q: %s %.2f out of [0,1]", lp.Area, name, v)
			}
		}
	}
	if c.Financing.DownPaymentRate < 0 || c.Financing.DownPaymentRate >= 1 {
		return fmt.Errorf("down payment rate %.2f out of [0,1)", c.Financing.DownPaymentRate)
	}
	if c.Financing.TermYears <= 0 {
		return fmt.Errorf("loan term must be positive, got %d", c.Financing.TermYears)
	}
	return nil
}
