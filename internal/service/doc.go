// Package service contains the application use cases for managing decks and
// cards. Services coordinate domain objects and the store interfaces; they
// never depend on a concrete database.
//
// Reviewing lives in the card_review subpackage, read-only study views in
// study, authentication in auth and the AI tutor in tutor.
package service
