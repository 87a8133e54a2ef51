package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/quiz"
	"github.com/abhisek/pmoquiz/internal/report"
	"github.com/abhisek/pmoquiz/internal/router"
	"github.com/abhisek/pmoquiz/internal/screen"
	quizscreen "github.com/abhisek/pmoquiz/internal/screens/quiz"
	"github.com/abhisek/pmoquiz/internal/screens/results"
	"github.com/abhisek/pmoquiz/internal/screens/start"
	"github.com/abhisek/pmoquiz/internal/store"
	"github.com/abhisek/pmoquiz/internal/ui/layout"
)

// recordTimeout bounds the assessment history write.
const recordTimeout = 5 * time.Second

// Options holds the dependencies of the TUI.
type Options struct {
	// Questions defaults to quiz.Bank().
	Questions []quiz.Question

	Recommender flow.Recommender

	// Timeout bounds each recommendation call. Zero uses flow.DefaultTimeout.
	Timeout time.Duration

	// EventRepo records finished assessments. Optional.
	EventRepo store.EventRepo

	ExportDir string
	Logger    *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *flow.Controller
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel on the start screen.
func newAppModel(opts Options) AppModel {
	if opts.Questions == nil {
		opts.Questions = quiz.Bank()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctrl := flow.New(opts.Questions, opts.Logger)
	return AppModel{
		router: router.New(start.New(ctrl)),
		ctrl:   ctrl,
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.SyncMsg:
		return m, m.router.Replace(m.screenFor(m.ctrl.Session().State))

	case screen.FinishedMsg:
		return m, tea.Batch(
			m.router.Replace(m.screenFor(flow.StateResults)),
			m.fetch(msg.Request),
		)

	case flow.Result:
		// Resolve before any screen sees the result so a stale one can
		// never reach a fresh session.
		if !m.ctrl.Resolve(msg.Generation, msg.Recommendations, msg.Err) {
			return m, nil
		}
		return m, tea.Batch(m.router.Update(msg), m.record(msg))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) screenFor(state flow.State) screen.Screen {
	switch state {
	case flow.StateQuiz:
		return quizscreen.New(m.ctrl)
	case flow.StateResults:
		return results.New(m.ctrl, m.opts.ExportDir)
	default:
		return start.New(m.ctrl)
	}
}

func (m AppModel) fetch(req flow.Request) tea.Cmd {
	rec := m.opts.Recommender
	timeout := m.opts.Timeout
	return func() tea.Msg {
		if rec == nil {
			return flow.Result{Generation: req.Generation, Err: errors.New("no recommender configured")}
		}
		return flow.Fetch(context.Background(), rec, req, timeout)
	}
}

// record appends the committed outcome to the assessment history. Failures
// are logged and never reach the user.
func (m AppModel) record(res flow.Result) tea.Cmd {
	repo := m.opts.EventRepo
	if repo == nil {
		return nil
	}
	sess := m.ctrl.Session()
	data := store.AssessmentEventData{
		SessionID:       sess.ID,
		Generation:      sess.Generation,
		Status:          store.StatusReady,
		Scores:          sess.Scores.Labels(),
		MaxScores:       sess.MaxScores.Labels(),
		Recommendations: sess.Recommendations.Labels(),
	}
	if res.Err != nil {
		data.Status = store.StatusFailed
		data.ErrorMessage = res.Err.Error()
	}
	logger := m.opts.Logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := repo.AppendAssessment(ctx, data); err != nil {
			logger.Warn("record assessment", zap.String("session_id", data.SessionID), zap.Error(err))
		}
		return nil
	}
}

func (m AppModel) status() string {
	sess := m.ctrl.Session()
	switch sess.State {
	case flow.StateQuiz:
		return fmt.Sprintf("%d/%d answered", len(sess.Selections), len(sess.Questions))
	case flow.StateResults:
		return fmt.Sprintf("Overall %d%%", report.FromSession(sess).Overall())
	default:
		return ""
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
