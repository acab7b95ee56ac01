// Package render turns analysis responses into display cards.
//
// BuildCards is pure: it decides ordering, titles and number formatting.
// Materializing the cards on a terminal or a plain writer is a separate step.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/baitlens/internal/analysis"
)

const (
	// EvidenceNote is attached to the evidence card only, whose polarity is
	// inverted relative to the other metrics.
	EvidenceNote = "Higher means the text provides less supporting evidence."

	// EmbeddingsCaption describes the score-only card.
	EmbeddingsCaption = "Semantic similarity score from the optional embeddings layer."

	// Unavailable is shown in place of a missing engagement bait score.
	Unavailable = "Unavailable"
)

// Item is one formatted breakdown entry.
type Item struct {
	Label string
	Value string
}

// Card is one display unit in the results area.
type Card struct {
	Key     analysis.MetricKey
	Title   string
	Score   string
	Note    string // Shown between score and breakdown
	Items   []Item
	Caption string // Shown under the score on score-only cards
}

// ScoreOnly reports whether the card has no breakdown section.
func (c Card) ScoreOnly() bool {
	return c.Key == analysis.EngagementBaitScore
}

// BuildCards returns the six metric cards in display order followed by the
// engagement bait card.
func BuildCards(resp *analysis.Response) []Card {
	keys := analysis.BreakdownMetrics()
	cards := make([]Card, 0, len(keys)+1)

	for _, key := range keys {
		cards = append(cards, metricCard(key, resp.Metric(key)))
	}
	cards = append(cards, scoreOnlyCard(resp.EngagementBait))

	return cards
}

func metricCard(key analysis.MetricKey, m analysis.Metric) Card {
	card := Card{
		Key:   key,
		Title: analysis.Label(key),
		Score: FormatScore(m.Score),
	}
	if key == analysis.EvidenceDensity {
		card.Note = EvidenceNote
	}
	for _, e := range m.Breakdown {
		card.Items = append(card.Items, Item{
			Label: HumanizeLabel(e.Key),
			Value: FormatScore(e.Value),
		})
	}
	return card
}

func scoreOnlyCard(score *float64) Card {
	card := Card{
		Key:     analysis.EngagementBaitScore,
		Title:   analysis.Label(analysis.EngagementBaitScore),
		Score:   Unavailable,
		Caption: EmbeddingsCaption,
	}
	if score != nil {
		card.Score = FormatScore(*score)
	}
	return card
}

// WriteText writes cards and the summary line as plain text.
func WriteText(w io.Writer, cards []Card, summary string) error {
	var b strings.Builder

	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s\n", c.Title, c.Score)
		if c.Note != "" {
			fmt.Fprintf(&b, "  (%s)\n", c.Note)
		}
		if c.Caption != "" {
			fmt.Fprintf(&b, "  %s\n", c.Caption)
		}
		for _, item := range c.Items {
			fmt.Fprintf(&b, "  - %s: %s\n", item.Label, item.Value)
		}
	}

	if summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
