package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

// Engine ranks listings against a buyer profile. It holds only the
// read-only policy tables and is safe for concurrent use; Score is a
// pure function of its inputs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// weightsFor selects the weight profile for a buyer type, falling back
// to the first-time-buyer profile for anything unrecognized. Never
// fails: the fallback profile's presence is enforced by Validate.
func (e *Engine) weightsFor(buyerType string) (string, WeightProfile) {
	if w, ok := e.cfg.Weights[buyerType]; ok {
		return buyerType, w
	}
	return domain.BuyerFirstTime, e.cfg.Weights[domain.BuyerFirstTime]
}

// Score computes the 0-100 match score for one listing against one
// profile, with the per-criterion breakdown, contributing factors, and
// assembled explanation. A nil listing or profile short-circuits to a
// zero score with empty factors; callers can detect that degenerate
// case by MatchScore==0 with no factors.
func (e *Engine) Score(l *domain.Listing, p *domain.BuyerProfile) domain.ScoredListing {
	if l == nil || p == nil {
		out := domain.ScoredListing{
			MatchScore:     0,
			DetailedScores: map[string]float64{},
			MatchFactors:   []string{},
			Explanation:    "Not enough data to score this listing.",
		}
		if l != nil {
			out.Listing = *l
		}
		return out
	}

	price := ParseCurrencyMajorUnits(l.Price)
	buyerType, weights := e.weightsFor(p.BuyerType)

	scores := map[string]subScore{
		CriterionAffordability: e.scoreAffordability(price, p),
		CriterionBudget:        e.scoreBudget(price, p),
		CriterionLocation:      e.scoreLocation(l, p),
		CriterionBuyerType:     e.scoreBuyerType(l, p, price),
		CriterionInvestment:    e.scoreInvestment(l, p),
		CriterionAmenities:     e.scoreAmenities(l),
		CriterionLiquidity:     e.scoreLiquidity(l, p),
	}

	var total, weightSum float64
	detailed := make(map[string]float64, len(scores))
	factors := make([]string, 0, 8)
	var sentences []string

	for _, criterion := range criterionOrder {
		s := scores[criterion]
		detailed[criterion] = s.Score
		for _, f := range s.Factors {
			if f != "" {
				factors = append(factors, f)
			}
		}
		if s.Explanation != "" {
			sentences = append(sentences, s.Explanation)
		}
		w, ok := weights[criterion]
		if !ok {
			continue
		}
		total += w * s.Score
		weightSum += w
	}

	match := 0
	if weightSum > 0 {
		match = int(math.Round(100 * total / weightSum))
	}

	return domain.ScoredListing{
		Listing:              *l,
		MatchScore:           match,
		DetailedScores:       detailed,
		MatchFactors:         factors,
		Explanation:          strings.Join(sentences, " "),
		RecommendationReason: recommendationReason(match, buyerType),
	}
}

// ScoreAll scores every listing against the profile and returns them
// stable-sorted by match score descending, so equal-scored listings
// keep their original order. limit <= 0 means no truncation.
func (e *Engine) ScoreAll(listings []domain.Listing, p *domain.BuyerProfile, limit int) []domain.ScoredListing {
	out := make([]domain.ScoredListing, 0, len(listings))
	for i := range listings {
		out = append(out, e.Score(&listings[i], p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recommendationReason(score int, buyerType string) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Excellent match for your %s profile.", buyerType)
	case score >= 60:
		return fmt.Sprintf("Good match for your %s profile.", buyerType)
	case score >= 40:
		return fmt.Sprintf("A fair option for your %s profile.", buyerType)
	default:
		return fmt.Sprintf("Limited match for your %s profile.", buyerType)
	}
}
