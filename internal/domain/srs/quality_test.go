package srs

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuality(t *testing.T) {
	t.Parallel()

	for v := 0; v <= 5; v++ {
		q, err := NewQuality(v)
		require.NoError(t, err)
		assert.Equal(t, Quality(v), q)
	}

	for _, v := range []int{-1, 6, 42} {
		_, err := NewQuality(v)
		assert.ErrorIs(t, err, ErrInvalidQuality)
	}
}

func TestParseQuality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Quality
		wantErr bool
	}{
		{"0", 0, false},
		{"5", 5, false},
		{" 3 ", 3, false},
		{"4.0", 4, false},
		{"4.5", 0, true},
		{"6", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			q, err := ParseQuality(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuality)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, q)
		})
	}
}

func TestQualityPassed(t *testing.T) {
	t.Parallel()

	assert.False(t, QualityAlmost.Passed())
	assert.True(t, QualityHard.Passed())
}

func TestQualityFeedback(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, regexp.MustCompile(`(?i)excellent`), QualityPerfect.Feedback())
	assert.NotEqual(t, QualityPerfect.Feedback(), QualityHesitant.Feedback())
	assert.NotEqual(t, QualityHesitant.Feedback(), QualityHard.Feedback())
	for _, q := range []Quality{0, 1, 2} {
		assert.Contains(t, q.Feedback(), "Not quite")
	}
}
