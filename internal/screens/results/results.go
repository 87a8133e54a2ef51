// Package results shows scores, the AI feedback and the export action.
package results

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pmoquiz/internal/export"
	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/report"
	"github.com/abhisek/pmoquiz/internal/screen"
	"github.com/abhisek/pmoquiz/internal/ui/components"
	"github.com/abhisek/pmoquiz/internal/ui/layout"
	"github.com/abhisek/pmoquiz/internal/ui/theme"
)

const alertDuration = 4 * time.Second

// Exporter writes a report to path.
type Exporter func(path string, r report.Report) error

type exportDoneMsg struct {
	path string
	err  error
}

type alertExpiredMsg struct{ seq int }

// ResultsScreen renders the current session's results.
type ResultsScreen struct {
	ctrl      *flow.Controller
	exportDir string
	exporter  Exporter

	spinner  spinner.Model
	viewport viewport.Model

	alert    string
	alertErr bool
	alertSeq int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen. Reports are exported into exportDir.
func New(ctrl *flow.Controller, exportDir string) *ResultsScreen {
	return &ResultsScreen{
		ctrl:      ctrl,
		exportDir: exportDir,
		exporter:  export.SaveFile,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:  viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.ctrl.Session().Loading {
		return s.spinner.Tick
	}
	return nil
}

func (s *ResultsScreen) Title() string {
	return report.Title
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if !s.ctrl.Session().Loading {
		hints = append(hints, layout.KeyHint{Key: "e", Description: "Export PDF"})
	}
	return append(hints,
		layout.KeyHint{Key: "r", Description: "Retake"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.ctrl.Session().Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case exportDoneMsg:
		s.alertSeq++
		if msg.err != nil {
			s.alert = "Export failed: " + msg.err.Error()
			s.alertErr = true
		} else {
			s.alert = "Saved " + msg.path
			s.alertErr = false
		}
		seq := s.alertSeq
		return s, tea.Tick(alertDuration, func(time.Time) tea.Msg { return alertExpiredMsg{seq: seq} })

	case alertExpiredMsg:
		if msg.seq == s.alertSeq {
			s.alert = ""
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			s.ctrl.Retake()
			return s, func() tea.Msg { return screen.SyncMsg{} }
		case "e":
			return s, s.export()
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// export saves the current report off the event loop. It is unavailable
// while recommendations are loading.
func (s *ResultsScreen) export() tea.Cmd {
	sess := s.ctrl.Session()
	if sess.Loading {
		return nil
	}
	r := report.FromSession(sess)
	path := filepath.Join(s.exportDir, export.DefaultFileName)
	exporter := s.exporter
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: exporter(path, r)}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	textWidth := layout.TextWidth(width)

	var alert string
	if s.alert != "" {
		style := theme.Alert
		if s.alertErr {
			style = theme.Failure
		}
		alert = style.Render(s.alert)
	}

	vpHeight := height
	if alert != "" {
		vpHeight -= 2
	}
	s.viewport.SetWidth(textWidth)
	s.viewport.SetHeight(max(vpHeight, 1))
	s.viewport.SetContent(s.render(textWidth))

	body := s.viewport.View()
	if alert != "" {
		body += "\n\n" + alert
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *ResultsScreen) render(width int) string {
	sess := s.ctrl.Session()
	r := report.FromSession(sess)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Inherit(theme.Title).Render(r.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Inherit(theme.Subtitle).
		Render(fmt.Sprintf("Overall maturity %d%%", r.Overall())))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, c := range r.Categories {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}
	for _, c := range r.Categories {
		bar := components.NewProgressBar(c.Label, float64(c.Percent)/100, width)
		bar.LabelWidth = labelWidth
		bar.Suffix = fmt.Sprintf("%d/%d %3d%%", c.Score, c.Max, c.Percent)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case sess.Loading:
		b.WriteString(s.spinner.View() + " Generating your personalized recommendations...")
	case sess.Error != "":
		b.WriteString(lipgloss.NewStyle().Width(width).Inherit(theme.Failure).Render(sess.Error))
	default:
		for _, c := range r.Categories {
			b.WriteString(card(c, width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func card(c report.CategoryResult, width int) string {
	inner := width - 6
	text := lipgloss.NewStyle().Width(inner).Foreground(theme.Text)

	var parts []string
	parts = append(parts, theme.Label.Render(fmt.Sprintf("%s  %d%%", c.Label, c.Percent)))

	if c.Fallback {
		parts = append(parts, text.Render(c.Raw))
	} else {
		for _, sec := range []struct{ label, body string }{
			{"Insight", c.Sections.Insight},
			{"Follow-up Questions", c.Sections.FollowUp},
			{"Next Step", c.Sections.NextStep},
		} {
			if sec.body == "" {
				continue
			}
			parts = append(parts, theme.Selected.Render(sec.label), text.Render(sec.body))
		}
	}
	return theme.Card.Width(width).Render(strings.Join(parts, "\n"))
}
