package srs

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid srs parameters")

// Params holds the constants of the scheduler and the metrics derived from it.
type Params struct {
	// Ease factor bounds. MasteryEaseCeiling is the ease factor at which
	// the ease component of mastery saturates.
	InitialEaseFactor  float64
	MinEaseFactor      float64
	MasteryEaseCeiling float64

	// Fixed intervals, in days, for the first and second passing review.
	FirstInterval  int
	SecondInterval int

	// MaxIntervalDays caps the interval so review dates stay representable.
	MaxIntervalDays int

	// Cards at or above this interval are mature.
	MaturityThresholdDays int

	// Mastery is split between an interval component and an ease component
	// whose weights add up to 100.
	MasteryIntervalWeight float64
	MasteryEaseWeight     float64

	// Study time estimate.
	NewCardSeconds        int
	ReviewCardSeconds     int
	MaxNewCardsInEstimate int
}

// ParamsConfig overrides selected defaults; zero fields keep the default.
// The ease factor bounds are fixed by the card model and cannot be overridden.
type ParamsConfig struct {
	MaturityThresholdDays int
	MaxIntervalDays       int
	NewCardSeconds        int
	ReviewCardSeconds     int
	MaxNewCardsInEstimate int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		InitialEaseFactor:  domain.InitialEaseFactor,
		MinEaseFactor:      domain.MinEaseFactor,
		MasteryEaseCeiling: 3.0,

		FirstInterval:   1,
		SecondInterval:  6,
		MaxIntervalDays: 36500,

		MaturityThresholdDays: 21,

		MasteryIntervalWeight: 80,
		MasteryEaseWeight:     20,

		NewCardSeconds:        30,
		ReviewCardSeconds:     15,
		MaxNewCardsInEstimate: 10,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.MaturityThresholdDays > 0 {
		params.MaturityThresholdDays = config.MaturityThresholdDays
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}
	if config.NewCardSeconds > 0 {
		params.NewCardSeconds = config.NewCardSeconds
	}
	if config.ReviewCardSeconds > 0 {
		params.ReviewCardSeconds = config.ReviewCardSeconds
	}
	if config.MaxNewCardsInEstimate > 0 {
		params.MaxNewCardsInEstimate = config.MaxNewCardsInEstimate
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks that the parameters are mutually consistent.
func (p *Params) Validate() error {
	switch {
	case p.MinEaseFactor <= 0:
		return fmt.Errorf("%w: min ease factor must be positive", ErrInvalidParams)
	case p.InitialEaseFactor < p.MinEaseFactor:
		return fmt.Errorf("%w: initial ease factor below minimum", ErrInvalidParams)
	case p.MasteryEaseCeiling <= p.MinEaseFactor:
		return fmt.Errorf("%w: mastery ease ceiling must exceed minimum", ErrInvalidParams)
	case p.FirstInterval < 1 || p.SecondInterval < p.FirstInterval:
		return fmt.Errorf("%w: graduation intervals must be positive and non-decreasing", ErrInvalidParams)
	case p.MaxIntervalDays < p.SecondInterval:
		return fmt.Errorf("%w: max interval below graduation intervals", ErrInvalidParams)
	case p.MaturityThresholdDays < 1:
		return fmt.Errorf("%w: maturity threshold must be at least one day", ErrInvalidParams)
	case p.MasteryIntervalWeight < 0 || p.MasteryEaseWeight < 0 ||
		p.MasteryIntervalWeight+p.MasteryEaseWeight != 100:
		return fmt.Errorf("%w: mastery weights must be non-negative and sum to 100", ErrInvalidParams)
	case p.ReviewCardSeconds < 1 || p.NewCardSeconds <= p.ReviewCardSeconds:
		return fmt.Errorf("%w: new cards must cost more time than reviews", ErrInvalidParams)
	case p.MaxNewCardsInEstimate < 1:
		return fmt.Errorf("%w: new card cap must be positive", ErrInvalidParams)
	}
	return nil
}
