package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/quiz"
)

type fakeQuizAPI struct {
	result    *entities.QuizResult
	resultErr error

	questions    []entities.Question
	questionsErr error

	submitResult *entities.QuizResult
	submitErr    error

	resultCalls   int
	questionCalls int
	submitCalls   int
	submittedWith map[int64]string
	submittedQuiz int64
}

func (f *fakeQuizAPI) QuizResult(ctx context.Context, quizID int64) (*entities.QuizResult, error) {
	f.resultCalls++
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &entities.QuizResult{Message: "Anda belum mengerjakan kuis ini"}, nil
}

func (f *fakeQuizAPI) QuizQuestions(ctx context.Context, quizID int64) ([]entities.Question, error) {
	f.questionCalls++
	return f.questions, f.questionsErr
}

func (f *fakeQuizAPI) SubmitQuiz(ctx context.Context, quizID int64, answers map[int64]string) (*entities.QuizResult, error) {
	f.submitCalls++
	f.submittedQuiz = quizID
	f.submittedWith = answers
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResult, nil
}

func threeQuestions() []entities.Question {
	return []entities.Question{
		{ID: 10, Pertanyaan: "1 + 1 = ?", PilihanA: "1", PilihanB: "2", PilihanC: "3", PilihanD: "4"},
		{ID: 11, Pertanyaan: "2 + 2 = ?", PilihanA: "2", PilihanB: "3", PilihanC: "4", PilihanD: "5"},
		{ID: 12, Pertanyaan: "3 + 3 = ?", PilihanA: "4", PilihanB: "5", PilihanC: "6", PilihanD: "7"},
	}
}

func score(v float64) *float64 { return &v }

func openSession(t *testing.T, api *fakeQuizAPI) *quiz.Session {
	t.Helper()
	s := quiz.NewSession(42, api)
	require.NoError(t, s.Start(context.Background()))
	require.Equal(t, quiz.StateOpen, s.State())
	return s
}

// A recorded prior result closes the attempt immediately; the question set
// is never requested.
func TestSession_Start_RecordedResultClosesWithoutFetchingQuestions(t *testing.T) {
	api := &fakeQuizAPI{
		result: &entities.QuizResult{Message: "Sudah dikerjakan", Score: score(80)},
	}
	s := quiz.NewSession(42, api)

	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, quiz.StateClosed, s.State())
	assert.Equal(t, 0, api.questionCalls)
	require.NotNil(t, s.Result())
	assert.Equal(t, 80.0, *s.Result().Score)
}

func TestSession_Start_OpensOnFirstQuestion(t *testing.T) {
	api := &fakeQuizAPI{questions: threeQuestions()}
	s := openSession(t, api)

	q, index, total := s.Current()
	assert.Equal(t, int64(10), q.ID)
	assert.Equal(t, 0, index)
	assert.Equal(t, 3, total)
}

func TestSession_Start_EmptyQuestionSetFails(t *testing.T) {
	api := &fakeQuizAPI{}
	s := quiz.NewSession(42, api)

	err := s.Start(context.Background())
	require.ErrorIs(t, err, quiz.ErrNoQuestions)
	assert.Equal(t, quiz.StateFailed, s.State())
	assert.ErrorIs(t, s.Err(), quiz.ErrNoQuestions)
}

func TestSession_Start_ProbeFailureFails(t *testing.T) {
	api := &fakeQuizAPI{resultErr: errors.New("backend down")}
	s := quiz.NewSession(42, api)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, quiz.StateFailed, s.State())
	assert.Equal(t, 0, api.questionCalls)
}

func TestSession_Start_Twice(t *testing.T) {
	api := &fakeQuizAPI{questions: threeQuestions()}
	s := openSession(t, api)

	assert.ErrorIs(t, s.Start(context.Background()), quiz.ErrAlreadyStarted)
	assert.Equal(t, 1, api.resultCalls)
}

// Re-selecting an answer replaces the previous choice; other questions keep
// theirs.
func TestSession_SelectAnswer_Replaces(t *testing.T) {
	s := openSession(t, &fakeQuizAPI{questions: threeQuestions()})

	require.NoError(t, s.SelectAnswer(10, "A"))
	require.NoError(t, s.SelectAnswer(11, "C"))
	require.NoError(t, s.SelectAnswer(10, "B"))

	letter, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "B", letter)

	letter, ok = s.Answer(11)
	require.True(t, ok)
	assert.Equal(t, "C", letter)
}

func TestSession_SelectAnswer_Rejections(t *testing.T) {
	s := openSession(t, &fakeQuizAPI{questions: threeQuestions()})

	assert.ErrorIs(t, s.SelectAnswer(10, "E"), quiz.ErrUnknownChoice)
	assert.ErrorIs(t, s.SelectAnswer(99, "A"), quiz.ErrUnknownQuestion)

	closed := quiz.NewSession(1, &fakeQuizAPI{
		result: &entities.QuizResult{Score: score(50)},
	})
	require.NoError(t, closed.Start(context.Background()))
	assert.ErrorIs(t, closed.SelectAnswer(10, "A"), quiz.ErrNotOpen)
}

// The cursor clamps at both ends and never loses recorded answers.
func TestSession_Navigation_ClampsAndPreservesAnswers(t *testing.T) {
	s := openSession(t, &fakeQuizAPI{questions: threeQuestions()})

	s.Retreat()
	_, index, _ := s.Current()
	assert.Equal(t, 0, index)

	require.NoError(t, s.SelectAnswer(10, "A"))

	s.Advance()
	s.Advance()
	s.Advance()
	s.Advance()
	_, index, _ = s.Current()
	assert.Equal(t, 2, index)

	s.Retreat()
	s.Retreat()
	_, index, _ = s.Current()
	assert.Equal(t, 0, index)

	letter, ok := s.Answer(10)
	require.True(t, ok)
	assert.Equal(t, "A", letter)
}

// Submission is blocked until every question has an answer; the blocked
// attempt never reaches the backend.
func TestSession_Submit_GatedOnCompleteness(t *testing.T) {
	api := &fakeQuizAPI{questions: threeQuestions()}
	s := openSession(t, api)

	require.NoError(t, s.SelectAnswer(10, "A"))
	require.NoError(t, s.SelectAnswer(11, "B"))
	assert.False(t, s.Complete())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, quiz.ErrIncomplete)
	assert.Equal(t, 0, api.submitCalls)
	assert.Equal(t, quiz.StateOpen, s.State())
}

func TestSession_Submit_SendsFullMappingOnce(t *testing.T) {
	api := &fakeQuizAPI{
		questions:    threeQuestions(),
		submitResult: &entities.QuizResult{Message: "Kuis selesai", Score: score(67)},
	}
	s := openSession(t, api)

	require.NoError(t, s.SelectAnswer(10, "B"))
	require.NoError(t, s.SelectAnswer(11, "C"))
	require.NoError(t, s.SelectAnswer(12, "C"))
	require.True(t, s.Complete())

	result, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 67.0, *result.Score)

	assert.Equal(t, 1, api.submitCalls)
	assert.Equal(t, int64(42), api.submittedQuiz)
	assert.Equal(t, map[int64]string{10: "B", 11: "C", 12: "C"}, api.submittedWith)

	assert.Equal(t, quiz.StateClosed, s.State())
	assert.Equal(t, result, s.Result())

	// A closed attempt cannot be submitted again.
	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, quiz.ErrNotOpen)
	assert.Equal(t, 1, api.submitCalls)
}

// A failed submission keeps the attempt open with its answers intact so the
// user may retry.
func TestSession_Submit_FailureKeepsAttemptOpen(t *testing.T) {
	api := &fakeQuizAPI{
		questions: threeQuestions(),
		submitErr: errors.New("gateway timeout"),
	}
	s := openSession(t, api)

	require.NoError(t, s.SelectAnswer(10, "A"))
	require.NoError(t, s.SelectAnswer(11, "A"))
	require.NoError(t, s.SelectAnswer(12, "A"))

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, quiz.StateOpen, s.State())

	api.submitErr = nil
	api.submitResult = &entities.QuizResult{Message: "Kuis selesai", Score: score(33)}

	result, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33.0, *result.Score)
	assert.Equal(t, quiz.StateClosed, s.State())
}
