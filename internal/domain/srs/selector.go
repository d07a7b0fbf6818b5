package srs

import (
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// DefaultStudyLimit is the number of cards in a study session when the
// caller does not ask for a specific size.
const DefaultStudyLimit = 20

// Shuffler randomizes the order of n elements. *rand.Rand implements it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Selection is the outcome of SelectDue.
type Selection struct {
	// Cards is the sampled subset, in random order.
	Cards []*domain.Card
	// TotalDue counts every due card, independent of the limit.
	TotalDue int
}

// SelectDue picks up to limit due cards in random order. A limit of zero or
// less yields no cards; TotalDue is reported either way. A nil shuffler
// leaves the due cards ordered by review date.
//
// The input slice is not reordered.
func SelectDue(cards []*domain.Card, today time.Time, limit int, shuffler Shuffler) Selection {
	due := FilterCards(cards, today, IsDue)
	sel := Selection{Cards: []*domain.Card{}, TotalDue: len(due)}
	if limit <= 0 || len(due) == 0 {
		return sel
	}

	if shuffler != nil {
		shuffler.Shuffle(len(due), func(i, j int) {
			due[i], due[j] = due[j], due[i]
		})
	}

	if limit < len(due) {
		due = due[:limit]
	}
	sel.Cards = due
	return sel
}
