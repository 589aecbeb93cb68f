// Package exercise is the grammar and vocabulary practice screen.
package exercise

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/exercise"
	"github.com/stinglish/stinglish/internal/screen"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/layout"
)

// topicChosenMsg starts practice on a topic from the topic list.
type topicChosenMsg struct {
	Topic string
}

// nextMsg moves to the next question.
type nextMsg struct{}

// resetMsg returns to the topic list.
type resetMsg struct{}

// ExerciseScreen lets the learner pick a topic and answer its questions.
type ExerciseScreen struct {
	session *exercise.Session
	topics  components.Menu
	choices components.MultiChoice
	buttons components.ButtonRow
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// New creates an ExerciseScreen over content. A non-empty topic skips the
// topic list and starts practicing it straight away.
func New(content exercise.Content, topic string) *ExerciseScreen {
	s := &ExerciseScreen{session: exercise.New(content)}
	s.topics = s.topicMenu()
	if topic != "" {
		s.start(topic)
	}
	return s
}

func (s *ExerciseScreen) topicMenu() components.Menu {
	topics := s.session.Topics()
	items := make([]components.MenuItem, len(topics))
	for i, t := range topics {
		items[i] = components.MenuItem{
			Label: t,
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{Topic: t} }
			},
		}
	}
	return components.NewMenu(items)
}

func (s *ExerciseScreen) Init() tea.Cmd {
	return nil
}

func (s *ExerciseScreen) Title() string {
	return "Grammar & Vocabulary"
}

func (s *ExerciseScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case exercise.PhaseTopicSelect:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case exercise.PhaseInProgress:
		if _, answered := s.session.Feedback(); !answered {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "1-4", Description: "Answer"},
				{Key: "Esc", Description: "Dashboard"},
			}
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicChosenMsg:
		s.start(msg.Topic)
		return s, nil

	case nextMsg:
		s.next()
		return s, nil

	case resetMsg:
		s.session.Reset()
		s.topics = s.topicMenu()
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ExerciseScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	switch s.session.Phase() {
	case exercise.PhaseTopicSelect:
		s.topics, cmd = s.topics.Update(msg)
		return cmd

	case exercise.PhaseInProgress:
		if _, answered := s.session.Feedback(); !answered {
			return s.handleAnswerKey(msg)
		}
	}
	s.buttons, cmd = s.buttons.Update(msg)
	return cmd
}

func (s *ExerciseScreen) handleAnswerKey(msg tea.KeyPressMsg) tea.Cmd {
	s.choices, _ = s.choices.Update(msg)
	if !s.choices.Locked() {
		return nil
	}
	fb, err := s.session.SelectIndex(s.choices.Chosen)
	if err != nil {
		return nil
	}
	q, _ := s.session.Current()
	s.choices.Reveal(slices.Index(q.Options, fb.Answer))

	label := "Next Question"
	if s.session.IsLast() {
		label = "Finish"
	}
	s.buttons = components.NewButtonRow(components.Button{
		Label:   label,
		OnPress: emit(nextMsg{}),
	})
	return nil
}

func (s *ExerciseScreen) start(topic string) {
	if err := s.session.Start(topic); err != nil {
		s.buttons = components.NewButtonRow(components.Button{
			Label:   "Choose another topic",
			OnPress: emit(resetMsg{}),
		})
		return
	}
	s.loadQuestion()
}

func (s *ExerciseScreen) loadQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choices = components.NewMultiChoice(q.Options)
	s.buttons = components.ButtonRow{}
}

func (s *ExerciseScreen) next() {
	if err := s.session.Next(); err != nil {
		return
	}
	if s.session.Phase() == exercise.PhaseFinished {
		s.buttons = components.NewButtonRow(
			components.Button{Label: "Try another topic", OnPress: emit(resetMsg{})},
			components.Button{Label: "Back to Dashboard", OnPress: screen.Home},
		)
		return
	}
	s.loadQuestion()
}

// emit returns a button action that sends msg.
func emit(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}
