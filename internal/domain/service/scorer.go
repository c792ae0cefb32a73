package service

import (
	"math"
	"strings"

	"onthego/internal/domain/model"
)

// ScorePolicy holds the suitability and relevance weights. The values are a
// design contract; keeping them in one table makes later tuning a data change.
type ScorePolicy struct {
	RatingWeight    float64
	ReviewLogWeight float64
	ReviewCap       float64

	PriceBonus        map[string]float64
	UnknownPriceBonus float64

	ReservableBonus float64
	OpenNowBonus    float64
	GroupsBonus     float64
	DineInBonus     float64

	LiveMusicPenalty float64
	CocktailPenalty  float64

	// Relevance-only weights.
	DistanceDecayMax    float64
	DistanceDecayDiv    float64
	BudgetMatchBonus    float64
	BudgetNearPenalty   float64
	BudgetFarPenalty    float64
	VibeNameBonus       float64
	VibeCategoryBonus   float64
}

// DefaultScorePolicy returns the shipped weights. Mid-tier prices score
// highest: both very cheap and very expensive venues are a gamble for a
// client dinner.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		RatingWeight:    14,
		ReviewLogWeight: 8,
		ReviewCap:       18,
		PriceBonus: map[string]float64{
			model.PriceCheap: 6,
			model.PriceMid:   12,
			model.PriceUpper: 10,
			model.PriceTop:   6,
		},
		UnknownPriceBonus: 8,
		ReservableBonus:   6,
		OpenNowBonus:      3,
		GroupsBonus:       3,
		DineInBonus:       2,
		LiveMusicPenalty:  6,
		CocktailPenalty:   2,
		DistanceDecayMax:  20,
		DistanceDecayDiv:  250,
		BudgetMatchBonus:  8,
		BudgetNearPenalty: 2,
		BudgetFarPenalty:  4,
		VibeNameBonus:     4,
		VibeCategoryBonus: 3,
	}
}

// vibeKeywords rewards venues whose text matches the plan's mood.
var vibeKeywords = map[string][]string{
	model.VibeBusiness:    {"steak", "wine", "sushi", "grill"},
	model.VibeQuiet:       {"cafe", "tea", "bistro"},
	model.VibeLively:      {"bar", "taco", "brewery", "cantina"},
	model.VibeSolo:        {"ramen", "counter", "noodle", "deli"},
	model.VibeCelebratory: {"champagne", "rooftop", "cocktail"},
}

// SuitabilityScorer computes the 0-100 client-dinner score and the
// context-sensitive relevance score used for default ordering.
type SuitabilityScorer struct {
	policy ScorePolicy
}

// NewSuitabilityScorer creates a scorer with the given policy.
func NewSuitabilityScorer(policy ScorePolicy) *SuitabilityScorer {
	return &SuitabilityScorer{policy: policy}
}

// NewDefaultScorer creates a scorer with the shipped weights.
func NewDefaultScorer() *SuitabilityScorer {
	return NewSuitabilityScorer(DefaultScorePolicy())
}

// Score computes the suitability score from the record's own fields only, so
// it is stable under filtering and reordering. Deterministic, clamped to [0,100].
func (s *SuitabilityScorer) Score(r *model.Restaurant) int {
	p := s.policy

	score := r.Rating * p.RatingWeight
	score += math.Min(p.ReviewCap, math.Log10(1+float64(r.ReviewCount))*p.ReviewLogWeight)

	if bonus, ok := p.PriceBonus[r.Price]; ok {
		score += bonus
	} else {
		score += p.UnknownPriceBonus
	}

	if r.Reservable {
		score += p.ReservableBonus
	}
	if r.IsOpenNow() {
		score += p.OpenNowBonus
	}
	if r.GoodForGroups {
		score += p.GroupsBonus
	}
	if r.DineIn {
		score += p.DineInBonus
	}
	if r.LiveMusic {
		score -= p.LiveMusicPenalty
	}
	if r.ServesCocktails {
		score -= p.CocktailPenalty
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// Relevance computes the composite ordering score: suitability plus distance
// decay plus, when a plan is active, budget and vibe adjustments. Not
// persisted on the record because it depends on mutable external state.
func (s *SuitabilityScorer) Relevance(r *model.Restaurant, plan *model.DiningPlan) float64 {
	p := s.policy
	score := float64(s.Score(r))

	if r.DistanceMeters != nil {
		score += math.Max(0, p.DistanceDecayMax-*r.DistanceMeters/p.DistanceDecayDiv)
	}

	if plan == nil {
		return score
	}

	if target := model.BudgetToPrice(plan.Budget); target != model.PriceUnknown {
		switch {
		case r.Price == target:
			score += p.BudgetMatchBonus
		case r.Price == model.PriceUnknown:
			score -= p.BudgetFarPenalty
		default:
			gap := model.PriceRank(r.Price) - model.PriceRank(target)
			if gap < 0 {
				gap = -gap
			}
			if gap <= 1 {
				score -= p.BudgetNearPenalty
			} else {
				score -= p.BudgetFarPenalty
			}
		}
	}

	score += s.vibeBonus(r, plan.Vibe)
	return score
}

// vibeBonus returns the strongest matching keyword bonus: name matches beat
// category/tag matches.
func (s *SuitabilityScorer) vibeBonus(r *model.Restaurant, vibe string) float64 {
	keywords, ok := vibeKeywords[vibe]
	if !ok {
		return 0
	}
	name := strings.ToLower(r.Name)
	haystack := strings.ToLower(strings.Join(r.CategoryTitles(), " ") + " " + strings.Join(r.Tags, " "))
	var best float64
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return s.policy.VibeNameBonus
		}
		if strings.Contains(haystack, kw) && best < s.policy.VibeCategoryBonus {
			best = s.policy.VibeCategoryBonus
		}
	}
	return best
}
