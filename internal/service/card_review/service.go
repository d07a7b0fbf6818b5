// Package card_review records the outcome of a flashcard review: it checks
// ownership, runs the SM-2 scheduler and persists the new schedule in one
// transaction.
package card_review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
)

// ReviewResult is the outcome of a submitted review.
type ReviewResult struct {
	// Card is the persisted card with its new schedule.
	Card *domain.Card
	// Quality is the grade the review was recorded with.
	Quality srs.Quality
	// Message is the learner-facing feedback for Quality.
	Message string
}

// Service records flashcard reviews.
type Service interface {
	// SubmitReview grades cardID with quality on behalf of userID.
	//
	// Errors:
	//   - srs.ErrInvalidQuality when quality is outside 0..5; nothing is read or written
	//   - store.ErrCardNotFound when the card does not exist or belongs to another user
	//   - store.ErrConcurrentUpdate when another review of the card committed first
	SubmitReview(ctx context.Context, userID, cardID uuid.UUID, quality srs.Quality) (*ReviewResult, error)
}

// ServiceError wraps unexpected failures with the operation that failed.
// Sentinel errors from the store and scheduler stay reachable via errors.Is.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_review", Message: message, Err: err}
}
