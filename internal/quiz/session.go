// Package quiz holds the per-attempt state machine for taking one quiz:
// probe prior result, walk the question sequence, accumulate answers,
// submit exactly once.
package quiz

import (
	"context"
	"errors"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// API is the slice of backend operations one attempt needs.
type API interface {
	// QuizResult fetches the recorded result for a quiz. A result without a
	// numeric score means the attempt is still open.
	QuizResult(ctx context.Context, quizID int64) (*entities.QuizResult, error)
	QuizQuestions(ctx context.Context, quizID int64) ([]entities.Question, error)
	SubmitQuiz(ctx context.Context, quizID int64, answers map[int64]string) (*entities.QuizResult, error)
}

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrNotOpen         = errors.New("quiz attempt is not open")
	ErrIncomplete      = errors.New("quiz attempt has unanswered questions")
	ErrUnknownQuestion = errors.New("question is not part of this quiz")
	ErrUnknownChoice   = errors.New("unknown choice letter")
	ErrSubmitInFlight  = errors.New("submission already in flight")
	ErrAlreadyStarted  = errors.New("attempt already activated")
)

// State is the lifecycle position of one attempt.
type State int

const (
	StateInitializing State = iota
	StateOpen
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	}
	return "invalid"
}

// Session is one activation of the quiz view for one quiz. Closed and
// Failed are terminal; revisiting the quiz builds a fresh session. Nothing
// is persisted across activations.
type Session struct {
	api    API
	quizID int64

	state      State
	questions  []entities.Question
	answers    map[int64]string
	current    int
	result     *entities.QuizResult
	failure    error
	submitting bool
}

// NewSession creates an attempt in Initializing state. Call Start to run
// the entry protocol.
func NewSession(quizID int64, api API) *Session {
	return &Session{
		api:     api,
		quizID:  quizID,
		state:   StateInitializing,
		answers: make(map[int64]string),
	}
}

// Start runs the entry protocol: first probe the recorded result; a numeric
// score closes the attempt immediately and the questions are never fetched.
// Otherwise load the question set and open the attempt, or fail when the
// set is empty.
func (s *Session) Start(ctx context.Context) error {
	if s.state != StateInitializing {
		return ErrAlreadyStarted
	}

	result, err := s.api.QuizResult(ctx, s.quizID)
	if err != nil {
		s.fail(err)
		return err
	}
	if result.Recorded() {
		s.state = StateClosed
		s.result = result
		return nil
	}

	questions, err := s.api.QuizQuestions(ctx, s.quizID)
	if err != nil {
		s.fail(err)
		return err
	}
	if len(questions) == 0 {
		s.fail(ErrNoQuestions)
		return ErrNoQuestions
	}

	s.state = StateOpen
	s.questions = questions
	s.current = 0
	return nil
}

func (s *Session) fail(err error) {
	s.state = StateFailed
	s.failure = err
}

func (s *Session) QuizID() int64 { return s.quizID }

func (s *Session) State() State { return s.state }

// Err returns the failure cause when the session is in Failed state.
func (s *Session) Err() error { return s.failure }

// Result returns the recorded result when the session is Closed.
func (s *Session) Result() *entities.QuizResult { return s.result }

// Current returns the question under the cursor plus its position, valid
// only while the attempt is open.
func (s *Session) Current() (entities.Question, int, int) {
	if s.state != StateOpen {
		return entities.Question{}, 0, 0
	}
	return s.questions[s.current], s.current, len(s.questions)
}

// Answer returns the stored choice for a question, if any.
func (s *Session) Answer(questionID int64) (string, bool) {
	letter, ok := s.answers[questionID]
	return letter, ok
}

// SelectAnswer records a choice for a question, replacing any prior choice
// for that question. Local state only; the server is not contacted.
func (s *Session) SelectAnswer(questionID int64, letter string) error {
	if s.state != StateOpen {
		return ErrNotOpen
	}
	if !validLetter(letter) {
		return ErrUnknownChoice
	}
	if !s.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}

	s.answers[questionID] = letter
	return nil
}

// Advance moves the cursor forward, clamped to the last question. A no-op
// outside Open.
func (s *Session) Advance() {
	if s.state != StateOpen {
		return
	}
	if s.current < len(s.questions)-1 {
		s.current++
	}
}

// Retreat moves the cursor back, clamped to the first question. Previously
// selected answers are preserved.
func (s *Session) Retreat() {
	if s.state != StateOpen {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// Complete reports whether every question has an answer. Submission is
// gated on it client-side; the server remains the authority on
// completeness.
func (s *Session) Complete() bool {
	if s.state != StateOpen {
		return false
	}
	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Submit sends the full answer mapping once. On success the attempt closes
// with the server-returned result; on failure it stays open so the user may
// retry. Resubmission after success is structurally impossible: the session
// is no longer Open.
func (s *Session) Submit(ctx context.Context) (*entities.QuizResult, error) {
	if s.state != StateOpen {
		return nil, ErrNotOpen
	}
	if s.submitting {
		return nil, ErrSubmitInFlight
	}
	if !s.Complete() {
		return nil, ErrIncomplete
	}

	payload := make(map[int64]string, len(s.answers))
	for id, letter := range s.answers {
		payload[id] = letter
	}

	s.submitting = true
	result, err := s.api.SubmitQuiz(ctx, s.quizID, payload)
	s.submitting = false
	if err != nil {
		return nil, err
	}

	s.state = StateClosed
	s.result = result
	return result, nil
}

func (s *Session) hasQuestion(id int64) bool {
	for _, q := range s.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

func validLetter(letter string) bool {
	for _, l := range entities.ChoiceLetters {
		if l == letter {
			return true
		}
	}
	return false
}
