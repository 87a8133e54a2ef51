// Package start is the landing screen of the assessment.
package start

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/screen"
	"github.com/abhisek/pmoquiz/internal/ui/components"
	"github.com/abhisek/pmoquiz/internal/ui/layout"
	"github.com/abhisek/pmoquiz/internal/ui/theme"
)

// StartScreen introduces the assessment and starts it.
type StartScreen struct {
	ctrl *flow.Controller
	menu components.Menu
	err  error
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start screen for ctrl.
func New(ctrl *flow.Controller) *StartScreen {
	s := &StartScreen{ctrl: ctrl}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start assessment", Action: s.begin},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *StartScreen) begin() tea.Cmd {
	if err := s.ctrl.Start(); err != nil {
		s.err = err
		return nil
	}
	return func() tea.Msg { return screen.SyncMsg{} }
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Title() string {
	return "Welcome"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StartScreen) View(width, height int) string {
	sess := s.ctrl.Session()
	textWidth := min(layout.TextWidth(width), 70)

	var sections []string
	sections = append(sections,
		theme.Title.Render("PMO Maturity Self-Assessment"),
		"",
		lipgloss.NewStyle().Width(textWidth).Align(lipgloss.Center).Foreground(theme.Text).Render(
			fmt.Sprintf("Answer %d questions about how your organization runs projects. "+
				"You'll get a score for each competency and tailored advice on what to do next.",
				len(sess.Questions))),
		"",
	)

	var cats []string
	for _, c := range quiz.Categories() {
		cats = append(cats, "• "+c.String())
	}
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(cats, "\n")),
		"",
		s.menu.View(),
	)

	if s.err != nil {
		sections = append(sections, theme.Failure.Render(s.err.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
