package srs

import (
	"errors"
	"sort"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// ErrInvalidDueFilter is returned by ParseDueFilter for unknown names.
var ErrInvalidDueFilter = errors.New("due filter must be one of due, due_today, overdue")

// DueFilter names one of the due predicates.
type DueFilter string

const (
	DueFilterDue      DueFilter = "due"
	DueFilterToday    DueFilter = "due_today"
	DueFilterOverdue  DueFilter = "overdue"
	defaultDueFilter            = DueFilterDue
)

// ParseDueFilter maps a query value to a DueFilter. An empty string selects
// DueFilterDue.
func ParseDueFilter(s string) (DueFilter, error) {
	switch f := DueFilter(s); f {
	case "":
		return defaultDueFilter, nil
	case DueFilterDue, DueFilterToday, DueFilterOverdue:
		return f, nil
	default:
		return "", ErrInvalidDueFilter
	}
}

// Predicate decides whether a card matches on the scheduling date today.
type Predicate func(card *domain.Card, today time.Time) bool

// Predicate returns the predicate for f.
func (f DueFilter) Predicate() Predicate {
	switch f {
	case DueFilterToday:
		return IsDueToday
	case DueFilterOverdue:
		return IsOverdue
	default:
		return IsDue
	}
}

// IsDue reports whether the card's review date has arrived or passed.
func IsDue(card *domain.Card, today time.Time) bool {
	return !reviewDate(card).After(today)
}

// IsDueToday reports whether the card is scheduled exactly for today.
func IsDueToday(card *domain.Card, today time.Time) bool {
	return reviewDate(card).Equal(today)
}

// IsOverdue reports whether the card's review date is before today.
func IsOverdue(card *domain.Card, today time.Time) bool {
	return reviewDate(card).Before(today)
}

func reviewDate(card *domain.Card) time.Time {
	return domain.Date(card.NextReviewAt.UTC())
}

// FilterCards returns the cards matching pred, ordered by review date with
// the oldest first. Cards due on the same date keep their input order.
func FilterCards(cards []*domain.Card, today time.Time, pred Predicate) []*domain.Card {
	out := make([]*domain.Card, 0, len(cards))
	for _, c := range cards {
		if pred(c, today) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return reviewDate(out[i]).Before(reviewDate(out[j]))
	})
	return out
}
