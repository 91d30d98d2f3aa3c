package domain

// Buyer types recognized by the recommendation engine. Anything else
// falls back to the first-time-buyer weight profile.
const (
	BuyerFirstTime = "First Time Buyer"
	BuyerOFW       = "OFW"
	BuyerInvestor  = "Investor"
	BuyerUpgrader  = "Upgrader"
)

// Furnishing levels as they appear on listing forms.
const (
	FurnishingBare  = "Bare"
	FurnishingSemi  = "Semi Furnished"
	FurnishingFully = "Fully Furnished"
)

// Budget brackets a buyer can declare, in PHP major units.
const (
	Budget1to3M  = "1M-3M"
	Budget3to5M  = "3M-5M"
	Budget5to10M = "5M-10M"
	Budget10MUp  = "10M+"
)

// Listing is a property record as stored. Price stays in its formatted
// form ("₱2,500,000") because that is what listing forms produce; the
// engine parses it on demand.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Furnishing  string   `json:"furnishing,omitempty"`
	Amenities   []string `json:"amenities"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// BuyerProfile is the buyer-side input to scoring. Income fields arrive
// from web forms as either numbers or numeric strings, hence Money.
type BuyerProfile struct {
	BuyerType         string `json:"buyer_type"`
	MonthlyIncome     Money  `json:"monthly_income"`
	MonthlyDebts      Money  `json:"monthly_debts"`
	HasSpouseIncome   bool   `json:"has_spouse_income"`
	PreferredLocation string `json:"preferred_location"`
	BudgetRange       string `json:"budget_range"`
}

// ScoredListing is a Listing decorated with the engine's verdict. It is
// derived per request and never persisted.
type ScoredListing struct {
	Listing
	MatchScore           int                `json:"match_score"`
	DetailedScores       map[string]float64 `json:"detailed_scores"`
	MatchFactors         []string           `json:"match_factors"`
	Explanation          string             `json:"explanation"`
	RecommendationReason string             `json:"recommendation_reason"`
}
