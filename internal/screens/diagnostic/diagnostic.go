// Package diagnostic is the placement test screen.
package diagnostic

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	diag "github.com/stinglish/stinglish/internal/diagnostic"
	"github.com/stinglish/stinglish/internal/questionbank"
	"github.com/stinglish/stinglish/internal/screen"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/layout"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

// DiagnosticScreen walks the learner through one diagnostic attempt and
// shows the assessed level and recommended topic.
type DiagnosticScreen struct {
	ctx    context.Context
	cancel context.CancelFunc

	engine *diag.Engine
	rec    diag.Recommender
	delay  time.Duration

	spinner    spinner.Model
	choices    components.MultiChoice
	input      components.TextInput
	chipCursor int
	analyzing  bool
	buttons    components.ButtonRow
	errMsg     string
}

var _ screen.Screen = (*DiagnosticScreen)(nil)
var _ screen.KeyHintProvider = (*DiagnosticScreen)(nil)
var _ screen.InputCapturer = (*DiagnosticScreen)(nil)
var _ screen.Closer = (*DiagnosticScreen)(nil)

// New creates a DiagnosticScreen for engine. rec may be nil, in which case
// no topic is recommended. A non-positive delay uses diag.AdvanceDelay.
func New(ctx context.Context, engine *diag.Engine, rec diag.Recommender, delay time.Duration) *DiagnosticScreen {
	if delay <= 0 {
		delay = diag.AdvanceDelay
	}
	ctx, cancel := context.WithCancel(ctx)
	return &DiagnosticScreen{
		ctx:    ctx,
		cancel: cancel,
		engine: engine,
		rec:    rec,
		delay:  delay,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *DiagnosticScreen) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (s *DiagnosticScreen) Title() string {
	return "Diagnostic Test"
}

// Close cancels a topic recommendation still in flight.
func (s *DiagnosticScreen) Close() {
	s.cancel()
}

func (s *DiagnosticScreen) CapturesInput() bool {
	_, ok := s.engine.Current().(*questionbank.FillInBlank)
	return ok && s.engine.Pending() == nil
}

func (s *DiagnosticScreen) KeyHints() []layout.KeyHint {
	switch s.engine.Phase() {
	case diag.PhaseFinished:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case diag.PhaseInProgress:
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	if s.engine.Pending() != nil {
		return []layout.KeyHint{{Key: "", Description: "Answer recorded..."}}
	}
	switch s.engine.Current().(type) {
	case *questionbank.MultipleChoice:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "1-4", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit test"},
		}
	case *questionbank.OrderSentence:
		return []layout.KeyHint{
			{Key: "←→", Description: "Move"},
			{Key: "Space", Description: "Add word"},
			{Key: "Bksp", Description: "Undo"},
			{Key: "R", Description: "Reset"},
			{Key: "Enter", Description: "Submit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit test"},
		}
	}
}

func (s *DiagnosticScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s, s.handleStart()

	case advanceMsg:
		return s, s.handleAdvance(msg)

	case recommendationMsg:
		return s, s.handleRecommendation(msg)

	case spinner.TickMsg:
		if !s.analyzing {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.CapturesInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DiagnosticScreen) handleStart() tea.Cmd {
	if err := s.engine.Start(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if s.engine.Phase() == diag.PhaseScoring {
		return s.score()
	}
	return s.prepareQuestion()
}

// prepareQuestion resets the input widgets for the current question.
func (s *DiagnosticScreen) prepareQuestion() tea.Cmd {
	switch q := s.engine.Current().(type) {
	case *questionbank.MultipleChoice:
		s.choices = components.NewMultiChoice(q.Options)
	case *questionbank.FillInBlank:
		s.input = components.NewTextInput("", "Type your answer...", 100)
		return s.input.Init()
	case *questionbank.OrderSentence:
		s.chipCursor = 0
	}
	return nil
}

func (s *DiagnosticScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.engine.Phase() {
	case diag.PhaseFinished:
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return cmd
	case diag.PhaseInProgress:
	default:
		return nil
	}
	if s.engine.Pending() != nil {
		return nil
	}

	switch q := s.engine.Current().(type) {
	case *questionbank.MultipleChoice:
		return s.handleChoiceKey(msg)
	case *questionbank.FillInBlank:
		return s.handleTextKey(msg)
	case *questionbank.OrderSentence:
		return s.handleOrderKey(msg, q)
	}
	return nil
}

func (s *DiagnosticScreen) handleChoiceKey(msg tea.KeyPressMsg) tea.Cmd {
	s.choices, _ = s.choices.Update(msg)
	if !s.choices.Locked() {
		return nil
	}
	if _, err := s.engine.SelectOption(s.choices.Chosen); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.acknowledge()
}

func (s *DiagnosticScreen) handleTextKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	if _, err := s.engine.SubmitText(s.input.Value()); err != nil {
		if !errors.Is(err, diag.ErrEmptyAnswer) {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.input.Blur()
	return s.acknowledge()
}

func (s *DiagnosticScreen) handleOrderKey(msg tea.KeyPressMsg, q *questionbank.OrderSentence) tea.Cmd {
	words := s.engine.WordBank()
	switch key := msg.String(); key {
	case "left", "h":
		if s.chipCursor > 0 {
			s.chipCursor--
		}
	case "right", "l", "tab":
		if s.chipCursor < len(q.Words)-1 {
			s.chipCursor++
		}
	case "space":
		_ = words.Place(s.chipCursor)
	case "backspace":
		words.Undo()
	case "r":
		words.Reset()
	case "enter":
		if _, err := s.engine.SubmitOrder(); err != nil {
			return nil
		}
		return s.acknowledge()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if words.Place(i) == nil {
				s.chipCursor = i
			}
		}
	}
	return nil
}

// acknowledge schedules the move to the next question.
func (s *DiagnosticScreen) acknowledge() tea.Cmd {
	idx := s.engine.Index()
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return advanceMsg{Index: idx}
	})
}

func (s *DiagnosticScreen) handleAdvance(msg advanceMsg) tea.Cmd {
	if s.engine.Phase() != diag.PhaseInProgress || s.engine.Index() != msg.Index {
		return nil
	}
	if err := s.engine.Advance(); err != nil {
		return nil
	}
	if s.engine.Phase() == diag.PhaseScoring {
		return s.score()
	}
	return s.prepareQuestion()
}

// score assesses the level and, when there were mistakes, asks the tutor
// for a topic in the background.
func (s *DiagnosticScreen) score() tea.Cmd {
	if _, err := s.engine.Score(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	incorrect := s.engine.Incorrect()
	if len(incorrect) == 0 || s.rec == nil {
		return s.finish("")
	}

	s.analyzing = true
	ctx, rec := s.ctx, s.rec
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			return recommendationMsg{Topic: diag.Recommend(ctx, rec, incorrect)}
		},
	)
}

func (s *DiagnosticScreen) handleRecommendation(msg recommendationMsg) tea.Cmd {
	if s.engine.Phase() != diag.PhaseScoring {
		return nil
	}
	s.analyzing = false
	return s.finish(msg.Topic)
}

func (s *DiagnosticScreen) finish(topic string) tea.Cmd {
	if err := s.engine.Finish(topic); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	var buttons []components.Button
	if topic != "" {
		buttons = append(buttons, components.Button{
			Label: "Start Practice: " + topic,
			OnPress: func() tea.Cmd {
				return func() tea.Msg {
					return screen.OpenMsg{Target: screen.TargetExercise, Topic: topic, Replace: true}
				}
			},
		})
	}
	buttons = append(buttons, components.Button{
		Label:   "Return to Dashboard",
		OnPress: screen.Home,
	})
	s.buttons = components.NewButtonRow(buttons...)
	return nil
}
