// Package quiz is the question-by-question screen.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/screen"
	"github.com/abhisek/pmoquiz/internal/ui/components"
	"github.com/abhisek/pmoquiz/internal/ui/layout"
	"github.com/abhisek/pmoquiz/internal/ui/theme"
)

// QuizScreen shows the current question and records answers.
type QuizScreen struct {
	ctrl   *flow.Controller
	choice components.Choice

	// index is the question the choice list was built for.
	index int

	// blocked is set when the learner tried to advance without an answer.
	blocked bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen. ctrl must be in the quiz state.
func New(ctrl *flow.Controller) *QuizScreen {
	s := &QuizScreen{ctrl: ctrl}
	s.sync()
	return s
}

// sync rebuilds the choice list for the controller's current question.
func (s *QuizScreen) sync() {
	sess := s.ctrl.Session()
	q := sess.Current()
	options := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		options[i] = a.Text
	}
	chosen := -1
	if idx, ok := sess.Selected(); ok {
		chosen = idx
	}
	s.choice = components.NewChoice(options, chosen)
	s.index = sess.Index
	s.blocked = false
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	sess := s.ctrl.Session()
	return fmt.Sprintf("Question %d of %d", sess.Index+1, len(sess.Questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	next := "Next"
	if s.ctrl.Session().IsLast() {
		next = "Finish"
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Choose"},
		{Key: "Enter", Description: "Answer & " + next},
		{Key: "←", Description: "Previous"},
		{Key: "→", Description: next},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch key := kmsg.String(); key {
	case "enter", "space":
		if err := s.ctrl.Select(s.choice.Cursor); err != nil {
			return s, nil
		}
		return s, s.next()
	case "right", "l", "n":
		return s, s.next()
	case "left", "h", "p":
		s.ctrl.Prev()
		s.sync()
		return s, nil
	default:
		s.choice = s.choice.Update(msg)
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if err := s.ctrl.Select(s.choice.Cursor); err == nil {
				s.choice.Chosen = s.choice.Cursor
				s.blocked = false
			}
		}
		return s, nil
	}
}

// next advances past an answered question, finishing on the last one.
func (s *QuizScreen) next() tea.Cmd {
	if !s.ctrl.CanAdvance() {
		s.blocked = true
		return nil
	}
	req, finished := s.ctrl.Next()
	if finished {
		return func() tea.Msg { return screen.FinishedMsg{Request: req} }
	}
	s.sync()
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	sess := s.ctrl.Session()
	q := sess.Current()
	textWidth := layout.TextWidth(width)

	answered := len(sess.Selections)
	progress := components.NewProgressBar("", float64(answered)/float64(len(sess.Questions)), textWidth)
	progress.Suffix = fmt.Sprintf("%d/%d answered", answered, len(sess.Questions))

	var b strings.Builder
	b.WriteString(progress.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render(q.Category.String()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(textWidth).Bold(true).Foreground(theme.Text).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(textWidth))

	if s.blocked {
		b.WriteString("\n")
		b.WriteString(theme.Alert.Render("Select an answer to continue."))
	}

	content := lipgloss.NewStyle().Width(textWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
