// Package gemini implements tutor.Provider on top of Google's Gemini API.
//
// Conversation history is sent as alternating user and model turns with the
// tutor's instructions as the system instruction. Transient API errors are
// retried with exponential backoff and jitter. Responses blocked by safety
// filters or carrying no text are returned as permanent failures.
package gemini
