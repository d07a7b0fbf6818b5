package srs

import (
	"math/rand"
	"testing"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/stretchr/testify/assert"
)

func deckOf(due, future int) []*domain.Card {
	cards := make([]*domain.Card, 0, due+future)
	for i := 0; i < due; i++ {
		cards = append(cards, cardDueIn(-(i % 3)))
	}
	for i := 0; i < future; i++ {
		cards = append(cards, cardDueIn(i+1))
	}
	return cards
}

func TestSelectDue_Limits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		due       int
		future    int
		limit     int
		wantCards int
	}{
		{"truncates to limit", 30, 5, 20, 20},
		{"limit above due count", 4, 5, 20, 4},
		{"zero limit", 4, 0, 0, 0},
		{"negative limit", 4, 0, -3, 0},
		{"nothing due", 0, 5, 20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := SelectDue(deckOf(tc.due, tc.future), today(), tc.limit, rand.New(rand.NewSource(1)))
			assert.Len(t, sel.Cards, tc.wantCards)
			assert.NotNil(t, sel.Cards)
			assert.Equal(t, tc.due, sel.TotalDue)
		})
	}
}

func TestSelectDue_NeverReturnsFutureCards(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		sel := SelectDue(deckOf(rng.Intn(10), rng.Intn(10)), today(), rng.Intn(15), rng)
		for _, c := range sel.Cards {
			assert.False(t, c.NextReviewAt.After(today()))
		}
	}
}

func TestSelectDue_ShuffleIsInjected(t *testing.T) {
	t.Parallel()

	cards := deckOf(25, 0)

	first := SelectDue(cards, today(), 25, rand.New(rand.NewSource(99)))
	second := SelectDue(cards, today(), 25, rand.New(rand.NewSource(99)))
	assert.Equal(t, first.Cards, second.Cards, "same seed, same order")

	other := SelectDue(cards, today(), 25, rand.New(rand.NewSource(100)))
	assert.ElementsMatch(t, first.Cards, other.Cards)
	assert.NotEqual(t, first.Cards, other.Cards)
}

func TestSelectDue_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	cards := deckOf(10, 0)
	orig := append([]*domain.Card(nil), cards...)

	SelectDue(cards, today(), 5, rand.New(rand.NewSource(3)))
	assert.Equal(t, orig, cards)
}
