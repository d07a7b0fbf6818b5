package srs

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidQuality is returned for a quality rating that is not an integer
// between 0 and 5.
var ErrInvalidQuality = errors.New("quality must be an integer between 0 and 5")

// Quality is the 0-5 self-assessment submitted with a review.
type Quality int

const (
	QualityBlackout   Quality = 0 // complete blackout
	QualityRecognized Quality = 1 // wrong, but the answer was recognized
	QualityAlmost     Quality = 2 // wrong, but the answer seemed easy once seen
	QualityHard       Quality = 3 // correct with serious difficulty
	QualityHesitant   Quality = 4 // correct after hesitation
	QualityPerfect    Quality = 5 // perfect recall

	// PassThreshold is the lowest quality that counts as a successful recall.
	PassThreshold = QualityHard
)

// NewQuality converts v into a Quality.
func NewQuality(v int) (Quality, error) {
	q := Quality(v)
	if !q.Valid() {
		return 0, ErrInvalidQuality
	}
	return q, nil
}

// ParseQuality parses a decimal rating. Integral representations such as
// "4" or "4.0" are accepted; "4.5", "abc" and out-of-range values are not.
func ParseQuality(s string) (Quality, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, ErrInvalidQuality
	}
	if f < float64(QualityBlackout) || f > float64(QualityPerfect) {
		return 0, ErrInvalidQuality
	}
	return Quality(f), nil
}

// Valid reports whether q is within 0..5.
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= PassThreshold
}

// Feedback returns the message shown to the learner after a review.
func (q Quality) Feedback() string {
	switch {
	case q == QualityPerfect:
		return "Excellent! Perfect recall."
	case q == QualityHesitant:
		return "Good job! You got it after a moment's thought."
	case q == QualityHard:
		return "Correct, but that one was tough. You'll see it again soon."
	default:
		return "Not quite. This card will come back for review today."
	}
}
