package questionbank

// Kind identifies how a diagnostic question is answered.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindFillInBlank    Kind = "fill-in-the-blank"
	KindOrderSentence  Kind = "order-sentence"
)

// Question is a diagnostic question. The concrete type determines the
// answer interaction: *MultipleChoice, *FillInBlank or *OrderSentence.
type Question interface {
	QuestionID() string
	Text() string
	Kind() Kind
	CorrectAnswer() string

	sealed()
}

// MultipleChoice is answered by picking one of Options.
type MultipleChoice struct {
	ID      string
	Prompt  string
	Options []string
	Answer  string
}

// FillInBlank is answered with free text.
type FillInBlank struct {
	ID     string
	Prompt string
	Answer string
}

// OrderSentence is answered by arranging Words into a sentence. Words may
// contain distractors and repeated entries.
type OrderSentence struct {
	ID     string
	Prompt string
	Words  []string
	Answer string
}

func (q *MultipleChoice) QuestionID() string    { return q.ID }
func (q *MultipleChoice) Text() string          { return q.Prompt }
func (q *MultipleChoice) Kind() Kind            { return KindMultipleChoice }
func (q *MultipleChoice) CorrectAnswer() string { return q.Answer }
func (*MultipleChoice) sealed()                 {}

func (q *FillInBlank) QuestionID() string    { return q.ID }
func (q *FillInBlank) Text() string          { return q.Prompt }
func (q *FillInBlank) Kind() Kind            { return KindFillInBlank }
func (q *FillInBlank) CorrectAnswer() string { return q.Answer }
func (*FillInBlank) sealed()                 {}

func (q *OrderSentence) QuestionID() string    { return q.ID }
func (q *OrderSentence) Text() string          { return q.Prompt }
func (q *OrderSentence) Kind() Kind            { return KindOrderSentence }
func (q *OrderSentence) CorrectAnswer() string { return q.Answer }
func (*OrderSentence) sealed()                 {}

// ExerciseQuestion is a multiple-choice practice question for a topic.
type ExerciseQuestion struct {
	Prompt      string
	Options     []string
	Answer      string
	Explanation string
}
