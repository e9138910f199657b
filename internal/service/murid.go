package service

import (
	"context"
	"fmt"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// MuridService wraps the murid-facing endpoints: subject browsing, study
// materials, quiz taking and learning preferences.
type MuridService struct {
	api HTTPClient
}

func NewMuridService(api HTTPClient) *MuridService {
	return &MuridService{api: api}
}

func (s *MuridService) Subjects(ctx context.Context) ([]entities.Subject, error) {
	var resp struct {
		Data []entities.Subject `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/murid/mata-pelajaran", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *MuridService) Materials(ctx context.Context, subjectID int64) ([]entities.Material, error) {
	var resp struct {
		Data []entities.Material `json:"data"`
	}
	if err := s.api.Get(ctx, fmt.Sprintf("/api/murid/materi/%d", subjectID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Quizzes lists the quizzes of a subject with the murid's recorded scores
// attached where present.
func (s *MuridService) Quizzes(ctx context.Context, subjectID int64) ([]entities.Quiz, error) {
	var resp struct {
		Data []entities.Quiz `json:"data"`
	}
	if err := s.api.Get(ctx, fmt.Sprintf("/api/murid/quiz/%d", subjectID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *MuridService) QuizQuestions(ctx context.Context, quizID int64) ([]entities.Question, error) {
	var resp struct {
		Data []entities.Question `json:"data"`
	}
	if err := s.api.Get(ctx, fmt.Sprintf("/api/murid/quiz/%d/soal", quizID), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *MuridService) QuizResult(ctx context.Context, quizID int64) (*entities.QuizResult, error) {
	var result entities.QuizResult
	if err := s.api.Get(ctx, fmt.Sprintf("/api/murid/quiz/%d/hasil", quizID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitQuiz sends the full answer mapping keyed by question id. Grading is
// server-side; the returned result is rendered as-is.
func (s *MuridService) SubmitQuiz(ctx context.Context, quizID int64, answers map[int64]string) (*entities.QuizResult, error) {
	body := struct {
		Jawaban map[int64]string `json:"jawaban"`
	}{Jawaban: answers}

	var result entities.QuizResult
	if err := s.api.Post(ctx, fmt.Sprintf("/api/murid/quiz/%d/submit", quizID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Preferences returns the murid's saved preferences, or nil when none are
// stored yet.
func (s *MuridService) Preferences(ctx context.Context) (*entities.Preferences, error) {
	var resp struct {
		Data *entities.Preferences `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/murid/preferensi", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *MuridService) SavePreferences(ctx context.Context, prefs entities.Preferences) error {
	return s.api.Post(ctx, "/api/murid/preferensi", prefs, nil)
}

func (s *MuridService) Recommendations(ctx context.Context) (*entities.Recommendation, error) {
	var rec entities.Recommendation
	if err := s.api.Get(ctx, "/api/murid/recommendations", &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Dashboard is the data behind the murid home view.
type Dashboard struct {
	// Recommendation is nil when the backend could not produce one, e.g.
	// for a murid without quiz history or saved preferences.
	Recommendation *entities.Recommendation
	// RecommendationErr records why the recommendation is missing; the view
	// falls back to listing all subjects with a prompt to set preferences.
	RecommendationErr error
	Subjects          []entities.Subject
}

// ShowRecommendations reports whether the view should render the ranked
// subjects instead of the full catalog.
func (d *Dashboard) ShowRecommendations() bool {
	return d.Recommendation != nil && len(d.Recommendation.RecommendedSubjects) > 0
}

// LoadDashboard fetches the murid home view data. A recommendation failure
// is not fatal: it degrades to the subject catalog. A subject catalog
// failure is.
func (s *MuridService) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	subjects, err := s.Subjects(ctx)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Subjects: subjects}
	rec, err := s.Recommendations(ctx)
	if err != nil {
		dash.RecommendationErr = err
	} else {
		dash.Recommendation = rec
	}
	return dash, nil
}
