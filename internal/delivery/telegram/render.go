package telegram

import (
	"context"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/quiz"
	"github.com/belajarku/belajarku-bot/internal/storage"
)

// renderHome shows the landing view for the chat's role: guru dashboard,
// murid dashboard, or the auth prompt for anonymous chats.
func (h *Handler) renderHome(ctx context.Context, chatID int64, us *storage.UserSession) {
	snap := us.Auth.Initialize(ctx)
	if !snap.Authenticated() {
		msg := newMessage(chatID, buildWelcomeMessage())
		msg.ReplyMarkup = buildAuthKeyboard()
		h.send(msg)
		return
	}

	switch snap.User.Role {
	case entities.RoleGuru:
		h.renderGuruDashboard(chatID, snap.User)
	default:
		h.renderMuridDashboard(ctx, chatID, us)
	}
}

func (h *Handler) renderMuridDashboard(ctx context.Context, chatID int64, us *storage.UserSession) {
	dash, err := us.Murid.LoadDashboard(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	if dash.RecommendationErr != nil {
		h.logger.Warn("recommendations unavailable",
			zap.Int64("chat_id", chatID),
			zap.Error(dash.RecommendationErr),
		)
	}

	subjects := dash.Subjects
	if dash.ShowRecommendations() {
		subjects = dash.Recommendation.RecommendedSubjects
	}

	msg := newMessage(chatID, buildMuridDashboardMessage(dash))
	if kb := buildSubjectListKeyboard(subjects); kb != nil {
		msg.ReplyMarkup = *kb
	}
	h.send(msg)
}

func (h *Handler) renderSubject(ctx context.Context, chatID int64, us *storage.UserSession, subjectID int64) {
	subjects, err := us.Murid.Subjects(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	var subject *entities.Subject
	for i := range subjects {
		if subjects[i].ID == subjectID {
			subject = &subjects[i]
			break
		}
	}
	if subject == nil {
		h.send(newPlainMessage(chatID, msgSubjectNotFound))
		return
	}

	materials, err := us.Murid.Materials(ctx, subjectID)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	quizzes, err := us.Murid.Quizzes(ctx, subjectID)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildSubjectMessage(*subject, materials, quizzes))
	if kb := buildSubjectKeyboard(*subject, materials, quizzes); kb != nil {
		msg.ReplyMarkup = *kb
	}
	h.send(msg)
}

func (h *Handler) renderMaterial(ctx context.Context, chatID int64, us *storage.UserSession, subjectID, materialID int64) {
	materials, err := us.Murid.Materials(ctx, subjectID)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	for _, m := range materials {
		if m.ID == materialID {
			h.send(newMessage(chatID, buildMaterialMessage(m)))
			return
		}
	}
	h.send(newPlainMessage(chatID, msgNoMaterials))
}

// openQuiz activates a fresh attempt for a quiz and renders the outcome of
// the entry protocol: the recorded result, the first question, or the
// failure.
func (h *Handler) openQuiz(ctx context.Context, chatID int64, us *storage.UserSession, quizID int64) {
	attempt := quiz.NewSession(quizID, us.Murid)
	if err := attempt.Start(ctx); err != nil {
		us.ActiveQuiz = nil
		if attempt.State() == quiz.StateFailed && attempt.Err() == quiz.ErrNoQuestions {
			h.send(newPlainMessage(chatID, msgNoQuestions))
			return
		}
		h.sendError(chatID, err.Error())
		return
	}

	us.ActiveQuiz = attempt
	text, kb := h.quizView(attempt)
	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	h.send(msg)
}

// quizView renders the active attempt's current state.
func (h *Handler) quizView(attempt *quiz.Session) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch attempt.State() {
	case quiz.StateClosed:
		kb := buildResultKeyboard()
		return buildResultMessage(attempt.Result()), &kb

	case quiz.StateOpen:
		q, index, total := attempt.Current()
		selected, _ := attempt.Answer(q.ID)
		kb := buildQuestionKeyboard(attempt.QuizID(), q, index, total, attempt.Complete())
		return buildQuestionMessage(q, index, total, selected), &kb
	}

	return md(msgQuizNotActive), nil
}

func (h *Handler) renderPreferencesDraft(chatID int64, flow *flowState) {
	msg := newMessage(chatID, buildPreferencesMessage(flow.prefs))
	msg.ReplyMarkup = buildPreferencesKeyboard()
	h.send(msg)
}

// openPreferences loads the murid's saved preferences into an editable
// draft and renders the editor.
func (h *Handler) openPreferences(ctx context.Context, chatID int64, us *storage.UserSession) {
	prefs, err := us.Murid.Preferences(ctx)
	if err != nil {
		h.logger.Warn("failed to load preferences", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(newPlainMessage(chatID, msgPrefsUnavailable))
		return
	}

	flow := &flowState{kind: flowPrefs, step: stepPrefsMenu}
	if prefs != nil {
		flow.prefs = *prefs
	}
	h.flows.set(chatID, flow)
	h.renderPreferencesDraft(chatID, flow)
}

func (h *Handler) renderGuruDashboard(chatID int64, user *entities.User) {
	msg := newMessage(chatID, buildGuruDashboardMessage(user))
	msg.ReplyMarkup = buildGuruDashboardKeyboard()
	h.send(msg)
}

func (h *Handler) renderGuruPending(ctx context.Context, chatID int64, us *storage.UserSession) {
	pending, err := us.Guru.PendingMurid(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildPendingMuridMessage(pending))
	if kb := buildPendingKeyboard(pending); kb != nil {
		msg.ReplyMarkup = *kb
	}
	h.send(msg)
}

func (h *Handler) renderGuruMuridList(ctx context.Context, chatID int64, us *storage.UserSession) {
	murid, err := us.Guru.Murid(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	h.send(newMessage(chatID, buildMuridListMessage(murid)))
}

func (h *Handler) renderGuruSubjects(ctx context.Context, chatID int64, us *storage.UserSession) {
	subjects, err := us.Guru.Subjects(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildGuruSubjectsMessage(subjects))
	msg.ReplyMarkup = buildGuruSubjectsKeyboard(subjects)
	h.send(msg)
}

func (h *Handler) renderGuruMaterials(ctx context.Context, chatID int64, us *storage.UserSession) {
	materials, err := us.Guru.Materials(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildGuruMaterialsMessage(materials))
	msg.ReplyMarkup = buildGuruMaterialsKeyboard()
	h.send(msg)
}

func (h *Handler) renderGuruQuizzes(ctx context.Context, chatID int64, us *storage.UserSession) {
	quizzes, err := us.Guru.Quizzes(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildGuruQuizzesMessage(quizzes))
	msg.ReplyMarkup = buildGuruQuizzesKeyboard()
	h.send(msg)
}

func (h *Handler) renderGuruScores(ctx context.Context, chatID int64, us *storage.UserSession, kelas string) {
	results, err := us.Guru.Scores(ctx, kelas)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	stats, err := us.Guru.ScoreStats(ctx, kelas)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	msg := newMessage(chatID, buildScoresMessage(results, stats, kelas))
	msg.ReplyMarkup = buildScoresKeyboard(uniqueClasses(results))
	h.send(msg)
}

func uniqueClasses(results []entities.HasilQuiz) []string {
	seen := make(map[string]struct{})
	var classes []string
	for _, r := range results {
		if _, ok := seen[r.Kelas]; ok {
			continue
		}
		seen[r.Kelas] = struct{}{}
		classes = append(classes, r.Kelas)
	}
	sort.Strings(classes)
	return classes
}
