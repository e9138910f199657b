package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// GuruService wraps the guru-facing endpoints: subject, material and quiz
// management, murid verification and score reporting.
type GuruService struct {
	api HTTPClient
}

func NewGuruService(api HTTPClient) *GuruService {
	return &GuruService{api: api}
}

func (s *GuruService) Subjects(ctx context.Context) ([]entities.Subject, error) {
	var resp struct {
		Data []entities.Subject `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/mata-pelajaran", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *GuruService) CreateSubject(ctx context.Context, req entities.NewSubjectRequest) error {
	return s.api.Post(ctx, "/api/guru/mata-pelajaran", req, nil)
}

func (s *GuruService) DeleteSubject(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/guru/mata-pelajaran/%d", id), nil)
}

func (s *GuruService) Materials(ctx context.Context) ([]entities.Material, error) {
	var resp struct {
		Data []entities.Material `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/materi", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *GuruService) CreateMaterial(ctx context.Context, req entities.NewMaterialRequest) error {
	return s.api.Post(ctx, "/api/guru/materi", req, nil)
}

func (s *GuruService) Quizzes(ctx context.Context) ([]entities.Quiz, error) {
	var resp struct {
		Data []entities.Quiz `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/quiz", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *GuruService) CreateQuiz(ctx context.Context, req entities.NewQuizRequest) error {
	return s.api.Post(ctx, "/api/guru/quiz", req, nil)
}

// PendingMurid lists registered murid accounts still awaiting verification.
func (s *GuruService) PendingMurid(ctx context.Context) ([]entities.PendingMurid, error) {
	var resp struct {
		Data []entities.PendingMurid `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/murid-pending", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// VerifyMurid approves a pending account so it may authenticate.
func (s *GuruService) VerifyMurid(ctx context.Context, id int64) error {
	return s.api.Put(ctx, fmt.Sprintf("/api/guru/verify-murid/%d", id), nil, nil)
}

func (s *GuruService) Murid(ctx context.Context) ([]entities.MuridDetail, error) {
	var resp struct {
		Data []entities.MuridDetail `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/murid", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Scores lists recorded quiz results, optionally filtered by kelas.
func (s *GuruService) Scores(ctx context.Context, kelas string) ([]entities.HasilQuiz, error) {
	var resp struct {
		Data []entities.HasilQuiz `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/nilai"+kelasFilter(kelas), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ScoreStats aggregates results per subject, optionally filtered by kelas.
func (s *GuruService) ScoreStats(ctx context.Context, kelas string) ([]entities.StatistikNilai, error) {
	var resp struct {
		Data []entities.StatistikNilai `json:"data"`
	}
	if err := s.api.Get(ctx, "/api/guru/nilai/statistik"+kelasFilter(kelas), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func kelasFilter(kelas string) string {
	if kelas == "" || kelas == "all" {
		return ""
	}
	return "?kelas=" + url.QueryEscape(kelas)
}
