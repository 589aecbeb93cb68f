// Package app is the root Bubble Tea model. It owns the screen stack, the
// logged-in learner and the frame drawn around every screen.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/chat"
	"github.com/stinglish/stinglish/internal/diagnostic"
	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/questionbank"
	"github.com/stinglish/stinglish/internal/router"
	"github.com/stinglish/stinglish/internal/screen"
	chatscreen "github.com/stinglish/stinglish/internal/screens/chat"
	"github.com/stinglish/stinglish/internal/screens/dashboard"
	diagscreen "github.com/stinglish/stinglish/internal/screens/diagnostic"
	exscreen "github.com/stinglish/stinglish/internal/screens/exercise"
	"github.com/stinglish/stinglish/internal/screens/login"
	"github.com/stinglish/stinglish/internal/screens/welcome"
	"github.com/stinglish/stinglish/internal/tutor"
	"github.com/stinglish/stinglish/internal/ui/layout"
)

// Options holds the services the screens are built from.
type Options struct {
	Bank      *questionbank.Bank
	Tutor     *tutor.Client
	Responder chat.Responder

	// SampleSize is the number of diagnostic questions. Zero uses the
	// bank default.
	SampleSize int

	// AdvanceDelay is how long a diagnostic answer stays on screen. Zero
	// uses diagnostic.AdvanceDelay.
	AdvanceDelay time.Duration

	// SkipWelcome starts at the login screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	opts    Options
	router  *router.Router
	profile *learner.Profile
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Bank == nil {
		opts.Bank = questionbank.Default()
	}
	if opts.Responder == nil {
		opts.Responder = chat.StreamingResponder{}
	}

	var first screen.Screen = login.New()
	if !opts.SkipWelcome {
		first = welcome.New(func() screen.Screen { return login.New() })
	}
	return AppModel{
		ctx:    ctx,
		opts:   opts,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		case "ctrl+h":
			if m.profile != nil {
				return m, screen.Home()
			}
			return m, nil
		case "q":
			if m.profile != nil && m.router.Depth() == 1 && !capturesInput(m.router.Active()) {
				return m, tea.Quit
			}
		}

	case screen.LoginMsg:
		m.profile = msg.Profile
		slog.Info("learner logged in")
		return m, m.router.Reset(dashboard.New(m.profile))

	case screen.LogoutMsg:
		m.profile = nil
		slog.Info("learner logged out")
		return m, m.router.Reset(login.New())

	case screen.HomeMsg:
		if m.profile == nil {
			return m, nil
		}
		return m, m.router.Reset(dashboard.New(m.profile))

	case screen.OpenMsg:
		s := m.open(msg)
		if s == nil {
			return m, nil
		}
		if msg.Replace {
			return m, m.router.Replace(s)
		}
		return m, m.router.Push(s)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// open builds the screen for an activity.
func (m AppModel) open(msg screen.OpenMsg) screen.Screen {
	if m.profile == nil {
		return nil
	}
	switch msg.Target {
	case screen.TargetDiagnostic:
		engine := diagnostic.New(m.opts.Bank,
			diagnostic.WithSampleSize(m.opts.SampleSize),
			diagnostic.WithOnComplete(m.profile.SetLevel),
		)
		var rec diagnostic.Recommender
		if m.opts.Tutor != nil {
			rec = m.opts.Tutor
		}
		return diagscreen.New(m.ctx, engine, rec, m.opts.AdvanceDelay)

	case screen.TargetChat:
		if m.opts.Tutor == nil {
			return nil
		}
		return chatscreen.New(m.ctx, m.opts.Tutor, m.profile, m.opts.Responder)

	case screen.TargetExercise:
		return exscreen.New(m.opts.Bank, msg.Topic)
	}
	slog.Warn("unknown activity", "target", msg.Target.String())
	return nil
}

func capturesInput(s screen.Screen) bool {
	c, ok := s.(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, the active screen and the footer.
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

	var name, level string
	if m.profile != nil {
		name = m.profile.Name
		level = m.profile.LevelLabel()
	}
	header := layout.RenderHeader(title, name, level, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
