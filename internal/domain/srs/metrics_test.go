package srs

import (
	"testing"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	assert.Equal(t, StatusNew, Status(cardWith(0, 0, 2.5), p))
	assert.Equal(t, StatusLearning, Status(cardWith(3, 0, 2.5), p))
	assert.Equal(t, StatusLearning, Status(cardWith(3, 20, 2.5), p))
	assert.Equal(t, StatusMature, Status(cardWith(5, 21, 2.5), p))
}

func TestMastery(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	tests := []struct {
		name string
		card *domain.Card
		want float64
	}{
		{"new card", cardWith(0, 0, 2.5), 0},
		{"failed card at floor", cardWith(4, 0, 1.3), 0},
		{"first review", cardWith(1, 1, 2.5), 17.9},
		{"mature at ceiling", cardWith(9, 21, 3.0), 100},
		{"beyond caps", cardWith(20, 400, 3.5), 100},
		{"half interval, floor ease", cardWith(5, 10, 1.3), 38.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Mastery(tc.card, p), 1e-9)
		})
	}
}

func TestMastery_Monotonic(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	for interval := 0; interval < 40; interval++ {
		for ef := 1.3; ef < 3.2; ef += 0.1 {
			m := Mastery(cardWith(3, interval, ef), p)
			assert.GreaterOrEqual(t, m, 0.0)
			assert.LessOrEqual(t, m, 100.0)
			assert.GreaterOrEqual(t, Mastery(cardWith(3, interval+1, ef), p), m)
			assert.GreaterOrEqual(t, Mastery(cardWith(3, interval, ef+0.1), p), m)
		}
	}

	assert.Equal(t, Mastery(cardWith(3, 7, 2.2), p), Mastery(cardWith(3, 7, 2.2), p))
}

func TestProgressPercentage(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	assert.Zero(t, ProgressPercentage(nil, p))
	assert.Equal(t, 50.0, ProgressPercentage([]*domain.Card{
		cardWith(0, 0, 2.5),
		cardWith(9, 21, 3.0),
	}, p))
}

func TestEstimateStudyMinutes(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	assert.Zero(t, EstimateStudyMinutes(0, 0, p))
	assert.Equal(t, 1, EstimateStudyMinutes(1, 0, p))
	assert.Equal(t, 1, EstimateStudyMinutes(0, 1, p))
	assert.Equal(t, 5, EstimateStudyMinutes(10, 0, p))
	assert.Equal(t, 5, EstimateStudyMinutes(500, 0, p), "new cards are capped")
	assert.Equal(t, 6, EstimateStudyMinutes(500, 3, p))
	assert.Equal(t, 25, EstimateStudyMinutes(0, 100, p))
	assert.Zero(t, EstimateStudyMinutes(-4, -1, p))

	for n := 0; n < 30; n++ {
		for r := 0; r < 30; r++ {
			m := EstimateStudyMinutes(n, r, p)
			assert.GreaterOrEqual(t, EstimateStudyMinutes(n+1, r, p), m)
			assert.GreaterOrEqual(t, EstimateStudyMinutes(n, r+1, p), m)
			if n+r > 0 {
				assert.Positive(t, m)
			}
		}
	}
}

func TestSummarizeDeck(t *testing.T) {
	t.Parallel()
	p := NewDefaultParams()

	newCard := cardWith(0, 0, 2.5)
	learningDue := cardWith(2, 6, 2.5)
	overdue := cardWith(5, 30, 2.8)
	overdue.NextReviewAt = today().AddDate(0, 0, -2)
	future := cardWith(4, 15, 2.5)
	future.NextReviewAt = today().AddDate(0, 0, 4)

	s := SummarizeDeck([]*domain.Card{newCard, learningDue, overdue, future}, today(), p)

	assert.Equal(t, 4, s.TotalCards)
	assert.Equal(t, 1, s.NewCards)
	assert.Equal(t, 2, s.LearningCards)
	assert.Equal(t, 1, s.MatureCards)
	assert.Equal(t, 3, s.DueCards)
	assert.Equal(t, 2, s.DueToday)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 2, s.DueReviewCards)
	assert.Equal(t, 1, s.EstimatedStudyMinutes)
	assert.Greater(t, s.ProgressPercentage, 0.0)
	assert.LessOrEqual(t, s.ProgressPercentage, 100.0)

	empty := SummarizeDeck(nil, today(), p)
	assert.Zero(t, empty.ProgressPercentage)
	assert.Zero(t, empty.EstimatedStudyMinutes)
}
