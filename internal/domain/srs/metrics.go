package srs

import (
	"math"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// CardStatus is the learning stage of a card, derived from its schedule.
type CardStatus string

const (
	StatusNew      CardStatus = "new"
	StatusLearning CardStatus = "learning"
	StatusMature   CardStatus = "mature"
)

// Status classifies a card: new until its first review, then learning
// until its interval reaches the maturity threshold.
func Status(card *domain.Card, params *Params) CardStatus {
	switch {
	case card.ReviewCount == 0:
		return StatusNew
	case card.Interval < params.MaturityThresholdDays:
		return StatusLearning
	default:
		return StatusMature
	}
}

// Mastery scores a card from 0 to 100, rounded to one decimal.
//
// The interval component grows linearly until the maturity threshold and
// the ease component linearly from MinEaseFactor to MasteryEaseCeiling.
// Never-reviewed cards score 0.
func Mastery(card *domain.Card, params *Params) float64 {
	if card.ReviewCount == 0 {
		return 0
	}

	threshold := float64(params.MaturityThresholdDays)
	intervalShare := math.Min(float64(card.Interval), threshold) / threshold
	if intervalShare < 0 {
		intervalShare = 0
	}

	easeShare := (card.EaseFactor - params.MinEaseFactor) / (params.MasteryEaseCeiling - params.MinEaseFactor)
	easeShare = math.Max(0, math.Min(1, easeShare))

	score := intervalShare*params.MasteryIntervalWeight + easeShare*params.MasteryEaseWeight
	return roundTenth(math.Min(100, score))
}

// ProgressPercentage is the mean mastery of cards, 0 for an empty deck.
func ProgressPercentage(cards []*domain.Card, params *Params) float64 {
	if len(cards) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cards {
		sum += Mastery(c, params)
	}
	return roundTenth(sum / float64(len(cards)))
}

// EstimateStudyMinutes estimates the minutes needed to work through
// newCards unseen cards and dueReviews due reviews. Only the first
// MaxNewCardsInEstimate new cards count. The result is rounded up, so it is
// at least one minute whenever there is anything to study.
func EstimateStudyMinutes(newCards, dueReviews int, params *Params) int {
	newCards = max(0, min(newCards, params.MaxNewCardsInEstimate))
	dueReviews = max(0, dueReviews)

	seconds := newCards*params.NewCardSeconds + dueReviews*params.ReviewCardSeconds
	return (seconds + 59) / 60
}

// DeckSummary aggregates the scheduling state of a deck's cards.
type DeckSummary struct {
	TotalCards    int `json:"total_cards"`
	NewCards      int `json:"new_cards"`
	LearningCards int `json:"learning_cards"`
	MatureCards   int `json:"mature_cards"`

	DueCards int `json:"due_cards"`
	DueToday int `json:"due_today"`
	Overdue  int `json:"overdue"`
	// DueReviewCards counts due cards that have been reviewed before.
	DueReviewCards int `json:"due_review_cards"`

	ProgressPercentage    float64 `json:"progress_percentage"`
	EstimatedStudyMinutes int     `json:"estimated_study_minutes"`
}

// SummarizeDeck computes the summary of cards on the scheduling date today.
func SummarizeDeck(cards []*domain.Card, today time.Time, params *Params) DeckSummary {
	s := DeckSummary{TotalCards: len(cards)}

	for _, c := range cards {
		switch Status(c, params) {
		case StatusNew:
			s.NewCards++
		case StatusLearning:
			s.LearningCards++
		case StatusMature:
			s.MatureCards++
		}

		if IsDue(c, today) {
			s.DueCards++
			if !c.IsNew() {
				s.DueReviewCards++
			}
		}
		if IsDueToday(c, today) {
			s.DueToday++
		}
		if IsOverdue(c, today) {
			s.Overdue++
		}
	}

	s.ProgressPercentage = ProgressPercentage(cards, params)
	s.EstimatedStudyMinutes = EstimateStudyMinutes(s.NewCards, s.DueReviewCards, params)
	return s
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
