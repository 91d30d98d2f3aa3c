package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

// subScore is one criterion's verdict before weighting. Score is always
// in [0,1]; Explanation and Factors may be empty for inert or
// data-starved criteria.
type subScore struct {
	Score       float64
	Explanation string
	Factors     []string
}

// scoreAffordability models a 20%-down amortizing loan at the
// configured rate and term, then bands the payment-to-income ratios
// into five tiers. Zero price or zero income yields a hard 0 with no
// explanation: there is nothing to estimate.
func (e *Engine) scoreAffordability(price int64, p *domain.BuyerProfile) subScore {
	income := float64(p.MonthlyIncome)
	if p.HasSpouseIncome {
		income += float64(p.MonthlyIncome) * 0.5
	}
	if price <= 0 || income <= 0 {
		return subScore{Score: 0}
	}

	fin := e.cfg.Financing
	loan := float64(price) * (1 - fin.DownPaymentRate)
	monthlyRate := fin.AnnualRate / 12
	n := float64(fin.TermYears * 12)
	pow := math.Pow(1+monthlyRate, n)
	payment := loan * monthlyRate * pow / (pow - 1)

	housingRatio := payment / income
	totalDebtRatio := (payment + float64(p.MonthlyDebts)) / income

	switch {
	case housingRatio <= 0.25 && totalDebtRatio <= 0.35:
		return subScore{1.0, "Excellent affordability: the monthly payment sits well within safe debt ratios.", []string{"financial-excellent"}}
	case housingRatio <= 0.30 && totalDebtRatio <= 0.40:
		return subScore{0.8, "Good affordability: the monthly payment fits standard lending guidelines.", []string{"financial-good"}}
	case housingRatio <= 0.35 && totalDebtRatio <= 0.45:
		return subScore{0.6, "Fair affordability: the payment is manageable but above the ideal ratio.", []string{"financial-fair"}}
	case housingRatio <= 0.40 && totalDebtRatio <= 0.50:
		return subScore{0.3, "Tight affordability: the monthly payment would stretch your budget.", []string{"financial-tight"}}
	default:
		return subScore{0.1, "This property would significantly stretch your monthly finances.", []string{"financial-stretch"}}
	}
}

// budgetBrackets in PHP major units; 10M+ is open-ended.
var budgetBrackets = map[string][2]float64{
	domain.Budget1to3M:  {1_000_000, 3_000_000},
	domain.Budget3to5M:  {3_000_000, 5_000_000},
	domain.Budget5to10M: {5_000_000, 10_000_000},
	domain.Budget10MUp:  {10_000_000, math.Inf(1)},
}

// scoreBudget rewards prices inside the declared bracket with widening
// tolerance bands. Unknown bracket or unparseable price is a neutral
// 0.5, deliberately distinct from a known bad fit.
func (e *Engine) scoreBudget(price int64, p *domain.BuyerProfile) subScore {
	bracket, ok := budgetBrackets[p.BudgetRange]
	if !ok || price <= 0 {
		return subScore{Score: 0.5}
	}
	v := float64(price)
	min, max := bracket[0], bracket[1]
	switch {
	case v >= min && v < max:
		return subScore{1.0, "Priced squarely within your declared budget range.", []string{"budget-perfect"}}
	case v >= min*0.8 && v <= max*1.2:
		return subScore{0.8, "Priced close to your declared budget range.", []string{"budget-close"}}
	case v >= min*0.6 && v <= max*1.4:
		return subScore{0.5, "Priced outside your budget range but potentially within reach.", nil}
	default:
		return subScore{0.2, "Priced well outside your declared budget range.", nil}
	}
}

// isLocationMatch is a bidirectional case-insensitive containment
// check. This is deliberately not fuzzy: "BGC" does not match
// "Bonifacio Global City" here, and changing that would shift scores.
func isLocationMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// locationPrior finds the first configured area whose name appears in
// the listing location (case-insensitive). No match uses the flat
// default prior.
func (e *Engine) locationPrior(location string) LocationPrior {
	loc := strings.ToLower(location)
	for _, lp := range e.cfg.Locations {
		if strings.Contains(loc, strings.ToLower(lp.Area)) {
			return lp
		}
	}
	return defaultLocationPrior
}

// scoreLocation blends direct preference matching with the area-quality
// prior: a matched preference lands in 0.9..1.0, a miss is scaled down
// to at most 0.4 of the area premium.
func (e *Engine) scoreLocation(l *domain.Listing, p *domain.BuyerProfile) subScore {
	if strings.TrimSpace(p.PreferredLocation) == "" || strings.TrimSpace(l.Location) == "" {
		return subScore{Score: 0.3}
	}
	prior := e.locationPrior(l.Location)
	if isLocationMatch(l.Location, p.PreferredLocation) {
		return subScore{
			Score:       0.9 + prior.Premium*0.1,
			Explanation: fmt.Sprintf("Located in your preferred area of %s.", p.PreferredLocation),
			Factors:     []string{"location-perfect"},
		}
	}
	score := prior.Premium * 0.4
	if prior.Premium >= 0.7 {
		return subScore{score, "Outside your preferred area, but in a prime location.", []string{"location-prime"}}
	}
	return subScore{Score: score}
}

func hasKeyword(l *domain.Listing, keywords ...string) bool {
	text := strings.ToLower(l.Title + " " + l.Description)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func anyAmenityContains(amenities []string, keys ...string) bool {
	for _, a := range amenities {
		la := strings.ToLower(a)
		for _, k := range keys {
			if strings.Contains(la, k) {
				return true
			}
		}
	}
	return false
}

// scoreBuyerType applies per-type heuristics beyond the generic
// criteria. Unrecognized types score a silent neutral 0.5.
func (e *Engine) scoreBuyerType(l *domain.Listing, p *domain.BuyerProfile, price int64) subScore {
	switch p.BuyerType {
	case domain.BuyerFirstTime:
		switch {
		case price > 0 && price <= 3_000_000:
			return subScore{1.0, "Priced well for a first home.", []string{"starter-ready"}}
		case price > 0 && price <= 5_000_000:
			return subScore{0.7, "Within reach for a first-time buyer.", nil}
		default:
			return subScore{Score: 0.3}
		}

	case domain.BuyerOFW:
		score := 0.5
		var factors []string
		var notes []string
		if hasKeyword(l, "ofw friendly", "ofw") {
			score += 0.4
			factors = append(factors, "ofw-friendly")
			notes = append(notes, "Marketed as OFW friendly.")
		}
		switch l.Furnishing {
		case domain.FurnishingFully:
			score += 0.3
			factors = append(factors, "move-in-ready")
			notes = append(notes, "Fully furnished and ready for remote purchase.")
		case domain.FurnishingSemi:
			score += 0.2
		}
		return subScore{math.Min(score, 1.0), strings.Join(notes, " "), factors}

	case domain.BuyerInvestor:
		score := 0.4
		var factors []string
		var notes []string
		if hasKeyword(l, "investment") {
			score += 0.4
			factors = append(factors, "investment-tagged")
			notes = append(notes, "Marketed as an investment property.")
		}
		if anyAmenityContains(l.Amenities, "rental", "commercial") {
			score += 0.2
			factors = append(factors, "rental-potential")
			notes = append(notes, "Amenities suggest rental or commercial use.")
		}
		return subScore{math.Min(score, 1.0), strings.Join(notes, " "), factors}

	case domain.BuyerUpgrader:
		switch {
		case price >= 5_000_000 && len(l.Amenities) >= 3:
			return subScore{1.0, "Premium property matching your upgrade goals.", []string{"upgrade-premium"}}
		case price >= 3_000_000 && len(l.Amenities) >= 2:
			return subScore{0.8, "A solid step up from a starter home.", []string{"upgrade-ready"}}
		default:
			return subScore{Score: 0.4}
		}
	}
	return subScore{Score: 0.5}
}

// premiumAmenities drive both the investment bonus and the amenity
// bonus below.
var premiumAmenities = []string{"swimming pool", "gym", "parking", "security"}

// scoreInvestment estimates upside for OFW and Investor buyers from the
// area growth prior plus premium amenities and market liquidity. Other
// buyer types get a silent neutral: the criterion carries no weight for
// them anyway.
func (e *Engine) scoreInvestment(l *domain.Listing, p *domain.BuyerProfile) subScore {
	if p.BuyerType != domain.BuyerOFW && p.BuyerType != domain.BuyerInvestor {
		return subScore{Score: 0.5}
	}
	prior := e.locationPrior(l.Location)
	score := prior.Growth * 0.6
	if anyAmenityContains(l.Amenities, premiumAmenities...) {
		score += 0.2
	}
	score += prior.Liquidity * 0.2
	score = math.Min(score, 1.0)

	if score >= 0.8 {
		return subScore{score, "Strong growth outlook for this area.", []string{"investment-strong"}}
	}
	if score >= 0.6 {
		return subScore{score, "Decent growth outlook for this area.", nil}
	}
	return subScore{Score: score}
}

// scoreAmenities scores raw amenity count against a ten-amenity
// ceiling, with a bonus for premium ones. The explanation always states
// the count, including zero.
func (e *Engine) scoreAmenities(l *domain.Listing) subScore {
	count := len(l.Amenities)
	score := math.Min(float64(count)/10, 1.0)
	var factors []string
	if anyAmenityContains(l.Amenities, premiumAmenities...) {
		score = math.Min(score+0.2, 1.0)
		factors = append(factors, "well-equipped")
	}
	return subScore{score, fmt.Sprintf("%d amenities available.", count), factors}
}

// scoreLiquidity passes the area liquidity prior through for OFW and
// Investor buyers; silent neutral otherwise.
func (e *Engine) scoreLiquidity(l *domain.Listing, p *domain.BuyerProfile) subScore {
	if p.BuyerType != domain.BuyerOFW && p.BuyerType != domain.BuyerInvestor {
		return subScore{Score: 0.5}
	}
	prior := e.locationPrior(l.Location)
	if prior.Liquidity >= 0.7 {
		return subScore{prior.Liquidity, "Good resale and rental liquidity in this market.", []string{"high-liquidity"}}
	}
	return subScore{Score: prior.Liquidity}
}
