package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
	"github.com/phrazzld/scry-decks/internal/testdb"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db    *sql.DB
	users *sqlite.UserStore
	decks *sqlite.DeckStore
	cards *sqlite.CardStore
	convs *sqlite.ConversationStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.OpenSQLite(t)
	return &fixture{
		db:    db,
		users: sqlite.NewUserStore(db, nil),
		decks: sqlite.NewDeckStore(db, nil),
		cards: sqlite.NewCardStore(db, nil),
		convs: sqlite.NewConversationStore(db, nil),
	}
}

func (f *fixture) createUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "correct-horse-battery", baseTime)
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$hashedpasswordplaceholder"
	user.Password = ""
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) createDeck(t *testing.T, user *domain.User, name string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(user.ID, name, baseTime)
	require.NoError(t, err)
	require.NoError(t, f.decks.Create(context.Background(), deck))
	return deck
}

func (f *fixture) createCard(t *testing.T, deck *domain.Deck, front string, created time.Time) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deck.ID, front, "answer to "+front, created)
	require.NoError(t, err)
	require.NoError(t, f.cards.Create(context.Background(), card))
	return card
}
