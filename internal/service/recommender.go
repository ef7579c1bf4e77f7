package service

import (
	"context"

	"github.com/davron17/finflow/internal/models"
)

// RecommendationFacts are the computed risk facts handed to an external
// text-generation collaborator. Analyses never depend on the returned prose;
// an absent or failing recommender just leaves the recommendation empty.
type RecommendationFacts struct {
	PeriodDays      int
	LiquidityStatus string
	MinBalance      float64
	FinalBalance    float64
	CashGaps        []models.CashGap
	BusinessType    string
}

// Recommender generates advisory prose from risk facts.
type Recommender interface {
	Recommend(ctx context.Context, facts RecommendationFacts) (string, error)
}
