package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	now := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)

	card, err := NewCard(deckID, "  What is Go?  ", "A programming language", now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, deckID, card.DeckID)
	assert.Equal(t, "What is Go?", card.Front)
	assert.Equal(t, InitialEaseFactor, card.EaseFactor)
	assert.Zero(t, card.Interval)
	assert.Zero(t, card.ReviewCount)
	assert.Nil(t, card.LastReviewedAt)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), card.NextReviewAt)
	assert.Equal(t, 1, card.Version)
	assert.True(t, card.IsNew())
}

func TestNewCard_Invalid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name   string
		deckID uuid.UUID
		front  string
		back   string
		want   error
	}{
		{"nil deck", uuid.Nil, "f", "b", ErrCardDeckIDEmpty},
		{"blank front", uuid.New(), "   ", "b", ErrCardFrontEmpty},
		{"blank back", uuid.New(), "f", "", ErrCardBackEmpty},
		{"front too long", uuid.New(), strings.Repeat("x", MaxCardTextLength+1), "b", ErrCardTextTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCard(tc.deckID, tc.front, tc.back, now)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestCardValidate_Schedule(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), "f", "b", time.Now())
	require.NoError(t, err)

	card.EaseFactor = 1.29
	assert.ErrorIs(t, card.Validate(), ErrCardScheduleInvalid)

	card.EaseFactor = MinEaseFactor
	card.Interval = -1
	assert.ErrorIs(t, card.Validate(), ErrCardScheduleInvalid)
}

func TestCardUpdateText(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	card, err := NewCard(uuid.New(), "front", "back", created)
	require.NoError(t, err)
	card.Interval = 6
	card.ReviewCount = 2

	later := created.Add(time.Hour)
	require.NoError(t, card.UpdateText("new front", "new back", later))
	assert.Equal(t, "new front", card.Front)
	assert.Equal(t, "new back", card.Back)
	assert.Equal(t, later, card.UpdatedAt)
	assert.Equal(t, 6, card.Interval, "schedule must not change")
	assert.Equal(t, 2, card.ReviewCount)

	err = card.UpdateText("", "x", later.Add(time.Hour))
	assert.ErrorIs(t, err, ErrCardFrontEmpty)
	assert.Equal(t, "new front", card.Front, "card restored on error")
	assert.Equal(t, later, card.UpdatedAt)
}

func TestCardClone(t *testing.T) {
	t.Parallel()

	reviewed := time.Now().UTC()
	card := &Card{ID: uuid.New(), LastReviewedAt: &reviewed}

	cp := card.Clone()
	*cp.LastReviewedAt = reviewed.Add(time.Hour)

	assert.Equal(t, reviewed, *card.LastReviewedAt)
}

func TestDate(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC on Jan 1 is already Jan 2 in Tokyo.
	ts := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Date(ts))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Date(ts.In(tokyo)))
}
