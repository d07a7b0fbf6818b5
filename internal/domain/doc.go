// Package domain contains the core entities of the flashcard service: users,
// decks, cards with their scheduling state, and tutor conversations.
// It is independent of storage and transport.
package domain
