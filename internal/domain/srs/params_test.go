package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, 1.3, p.MinEaseFactor)
	assert.Equal(t, 21, p.MaturityThresholdDays)
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	p, err := NewParams(ParamsConfig{MaturityThresholdDays: 30, NewCardSeconds: 45})
	require.NoError(t, err)
	assert.Equal(t, 30, p.MaturityThresholdDays)
	assert.Equal(t, 45, p.NewCardSeconds)
	assert.Equal(t, 15, p.ReviewCardSeconds, "unset fields keep defaults")

	_, err = NewParams(ParamsConfig{NewCardSeconds: 10})
	assert.ErrorIs(t, err, ErrInvalidParams, "new cards cheaper than reviews")
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"ease ceiling below floor", func(p *Params) { p.MasteryEaseCeiling = 1.0 }},
		{"second interval shorter", func(p *Params) { p.SecondInterval = 0 }},
		{"weights do not sum", func(p *Params) { p.MasteryEaseWeight = 50 }},
		{"zero cap", func(p *Params) { p.MaxNewCardsInEstimate = 0 }},
		{"max interval below graduation", func(p *Params) { p.MaxIntervalDays = 3 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewDefaultParams()
			tc.mutate(p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}
