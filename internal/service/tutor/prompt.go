package tutor

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/domain/srs"
)

//go:embed system_prompt.tmpl
var systemPromptSource string

var systemPromptTemplate = template.Must(template.New("system_prompt").Parse(systemPromptSource))

type promptCard struct {
	Front string
	Back  string
	Due   bool
}

type promptData struct {
	DeckName string
	Cards    []promptCard
}

// BuildSystemPrompt renders the tutor's instructions. When deck is non-nil
// the first maxCards of cards are listed, with due cards flagged.
func BuildSystemPrompt(deck *domain.Deck, cards []*domain.Card, today time.Time, maxCards int) (string, error) {
	var data promptData
	if deck != nil {
		data.DeckName = deck.Name
		if maxCards > 0 && len(cards) > maxCards {
			cards = cards[:maxCards]
		}
		for _, c := range cards {
			data.Cards = append(data.Cards, promptCard{
				Front: c.Front,
				Back:  c.Back,
				Due:   srs.IsDue(c, today),
			})
		}
	}

	var buf bytes.Buffer
	if err := systemPromptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering system prompt: %w", err)
	}
	return buf.String(), nil
}
