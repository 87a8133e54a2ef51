package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pmoquiz/internal/ui/theme"
)

// Choice lists the answers of one question. Cursor is the highlighted row;
// Chosen is the recorded answer or -1.
type Choice struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewChoice creates a choice list. The cursor starts on chosen when one is
// recorded.
func NewChoice(options []string, chosen int) Choice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	} else {
		chosen = -1
	}
	return Choice{Options: options, Cursor: cursor, Chosen: chosen}
}

// Update moves the cursor. Number keys jump straight to an option.
func (c Choice) Update(msg tea.Msg) Choice {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Cursor = i
			}
		}
	}
	return c
}

// View renders the options wrapped to width.
func (c Choice) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		marker := "  "
		if i == c.Cursor {
			marker = "▸ "
		}
		box := "( )"
		if i == c.Chosen {
			box = "(●)"
		}
		prefix := fmt.Sprintf("%s%s %d. ", marker, box, i+1)
		text := lipgloss.NewStyle().Width(max(width-lipgloss.Width(prefix), 10)).Render(opt)
		line := lipgloss.JoinHorizontal(lipgloss.Top, prefix, text)

		switch {
		case i == c.Cursor:
			line = theme.Selected.Render(line)
		case i == c.Chosen:
			line = theme.Chosen.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
