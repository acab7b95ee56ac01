package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/baitlens/internal/render"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"
)

const (
	cardWidth = 34
	minCols   = 1
	maxCols   = 4
)

// renderCard materializes one card.
func renderCard(c render.Card) string {
	inner := cardWidth - 4 // border and padding

	var b strings.Builder
	b.WriteString(CardTitleStyle.Render(runewidth.Truncate(c.Title, inner, "…")))
	b.WriteString("\n")

	if c.Score == render.Unavailable {
		b.WriteString(ScoreUnavailableStyle.Render(c.Score))
	} else {
		b.WriteString(ScorePillStyle.Render(c.Score))
	}
	b.WriteString("\n")

	if c.Note != "" {
		b.WriteString(CardNoteStyle.Render(wordWrap(c.Note, inner)))
		b.WriteString("\n")
	}
	if c.Caption != "" {
		b.WriteString(CardNoteStyle.Render(wordWrap(c.Caption, inner)))
		b.WriteString("\n")
	}

	for _, item := range c.Items {
		labelWidth := inner - runewidth.StringWidth(item.Value) - 4
		label := runewidth.Truncate(item.Label, labelWidth, "…")
		b.WriteString("• ")
		b.WriteString(BreakdownLabelStyle.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(BreakdownValueStyle.Render(item.Value))
		b.WriteString("\n")
	}

	return CardStyle.Width(cardWidth - 2).Render(strings.TrimSuffix(b.String(), "\n"))
}

// renderGrid lays cards out in rows that fit width.
func renderGrid(cards []render.Card, width int) string {
	if len(cards) == 0 {
		return ""
	}

	cols := width / (cardWidth + 1)
	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}

		var row []string
		for _, c := range cards[start:end] {
			row = append(row, renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderRaw shows the mirrored response body with JSON colouring.
func renderRaw(raw string, width int) string {
	if raw == "" {
		return ""
	}
	coloured := strings.TrimSuffix(string(pretty.Color([]byte(raw), nil)), "\n")
	box := RawBoxStyle
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(SubtitleStyle.Render("Raw response") + "\n\n" + coloured)
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	words := strings.Fields(s)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
