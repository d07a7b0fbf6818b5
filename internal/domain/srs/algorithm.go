package srs

import (
	"math"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease update for quality q.
//
// The adjustment is 0.1 - (5-q)*(0.08 + (5-q)*0.02), which is +0.1 for a
// perfect answer, 0 for quality 4 and increasingly negative below that.
// The result is clamped to params.MinEaseFactor on every call.
func calculateNewEaseFactor(currentEF float64, q Quality, params *Params) float64 {
	miss := float64(QualityPerfect - q)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateNewInterval returns the interval in days after a review.
//
// Parameters:
//   - reviewCount: the review count including the review being applied
//   - previousInterval, previousEF: scheduling state before the review
//
// A failed review resets the interval to 0. The first and second reviews
// use the fixed graduation intervals whatever the ease factor; later
// reviews multiply the previous interval by the pre-update ease factor,
// round half away from zero and are capped at params.MaxIntervalDays.
func calculateNewInterval(reviewCount, previousInterval int, previousEF float64, q Quality, params *Params) int {
	if !q.Passed() {
		return 0
	}

	switch reviewCount {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		days := math.Round(float64(previousInterval) * previousEF)
		if days > float64(params.MaxIntervalDays) {
			return params.MaxIntervalDays
		}
		return int(days)
	}
}

// calculateNextCard produces the card state after a review. The input card
// is not modified.
//
// today is the calendar date of the review in the scheduler's location,
// already normalised with domain.Date.
func calculateNextCard(card *domain.Card, q Quality, now, today time.Time, params *Params) *domain.Card {
	next := card.Clone()

	next.ReviewCount = card.ReviewCount + 1
	reviewedAt := now.UTC()
	next.LastReviewedAt = &reviewedAt

	next.Interval = calculateNewInterval(next.ReviewCount, card.Interval, card.EaseFactor, q, params)
	next.NextReviewAt = today.AddDate(0, 0, next.Interval)
	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, q, params)
	next.UpdatedAt = reviewedAt

	return next
}
