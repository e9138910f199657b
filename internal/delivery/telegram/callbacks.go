package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/quiz"
	"github.com/belajarku/belajarku-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Telegram sends callback queries without a message for stale or
	// inline-mode buttons. Nothing to act on, only a clock to dismiss.
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	var toast string

	switch cd.Action {
	case actionDash:
		_ = h.withErrorHandling(h.homeHandler)(ctx, chatID)

	case actionSubject:
		h.handleSubjectCallback(ctx, chatID, cd)

	case actionMaterial:
		h.handleMaterialCallback(ctx, chatID, cd)

	case actionQuiz:
		toast = h.handleQuizCallback(ctx, cb, cd)

	case actionPref:
		h.handlePrefCallback(ctx, chatID, cd)

	case actionAuth:
		h.handleAuthCallback(ctx, chatID, cd)

	case actionGuru:
		h.handleGuruCallback(ctx, chatID, cd)

	default:
		h.logger.Debug("unknown callback action", zap.String("data", cb.Data))
	}

	h.answerCallback(cb.ID, toast)
}

// answerCallback removes the user's "clock", optionally with a toast.
func (h *Handler) answerCallback(id, toast string) {
	answer := tgbotapi.NewCallback(id, toast)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleSubjectCallback(ctx context.Context, chatID int64, cd callbackData) {
	us, ok := h.requireRole(ctx, chatID, entities.RoleMurid)
	if !ok {
		return
	}
	subjectID, ok := callbackInt(cd, 0)
	if !ok {
		h.logger.Debug("invalid subject callback", zap.String("data", cd.Raw))
		return
	}
	h.renderSubject(ctx, chatID, us, subjectID)
}

func (h *Handler) handleMaterialCallback(ctx context.Context, chatID int64, cd callbackData) {
	us, ok := h.requireRole(ctx, chatID, entities.RoleMurid)
	if !ok {
		return
	}
	subjectID, ok1 := callbackInt(cd, 0)
	materialID, ok2 := callbackInt(cd, 1)
	if !ok1 || !ok2 {
		h.logger.Debug("invalid material callback", zap.String("data", cd.Raw))
		return
	}
	h.renderMaterial(ctx, chatID, us, subjectID, materialID)
}

// handleQuizCallback drives the active attempt. Answering and navigating
// edit the question message in place; the returned string becomes the
// callback toast.
func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	chatID := cb.Message.Chat.ID

	us, ok := h.requireRole(ctx, chatID, entities.RoleMurid)
	if !ok || len(cd.Params) < 2 {
		return ""
	}
	sub := cd.Params[0]
	quizID, err := strconv.ParseInt(cd.Params[1], 10, 64)
	if err != nil {
		h.logger.Debug("invalid quiz callback", zap.String("data", cd.Raw))
		return ""
	}

	if sub == quizOpen {
		h.openQuiz(ctx, chatID, us, quizID)
		return ""
	}

	attempt := us.ActiveQuiz
	if attempt == nil || attempt.QuizID() != quizID {
		h.send(newPlainMessage(chatID, msgQuizNotActive))
		return ""
	}

	switch sub {
	case quizAnswer:
		if len(cd.Params) < 4 {
			return ""
		}
		questionID, err := strconv.ParseInt(cd.Params[2], 10, 64)
		if err != nil {
			return ""
		}
		if err := attempt.SelectAnswer(questionID, cd.Params[3]); err != nil {
			h.logger.Debug("answer rejected", zap.String("data", cd.Raw), zap.Error(err))
			return ""
		}

	case quizNav:
		if len(cd.Params) < 3 {
			return ""
		}
		if cd.Params[2] == navNext {
			attempt.Advance()
		} else {
			attempt.Retreat()
		}

	case quizSubmit:
		if _, err := attempt.Submit(ctx); err != nil {
			switch err {
			case quiz.ErrIncomplete:
				return msgQuizIncomplete
			case quiz.ErrSubmitInFlight:
				return ""
			default:
				h.sendError(chatID, err.Error())
				return ""
			}
		}

	default:
		return ""
	}

	text, kb := h.quizView(attempt)
	h.edit(chatID, cb.Message.MessageID, text, kb)
	return ""
}

func (h *Handler) handlePrefCallback(ctx context.Context, chatID int64, cd callbackData) {
	us, ok := h.requireRole(ctx, chatID, entities.RoleMurid)
	if !ok || len(cd.Params) == 0 {
		return
	}

	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowPrefs {
		// The editor message outlived its conversation; rebuild the draft.
		h.openPreferences(ctx, chatID, us)
		return
	}

	// Values may contain the separator, e.g. subject names.
	value := strings.Join(cd.Params[1:], ":")

	switch cd.Params[0] {
	case prefMenu:
		flow.step = stepPrefsMenu
		h.renderPreferencesDraft(chatID, flow)

	case prefGaya:
		if value == "" {
			msg := newPlainMessage(chatID, "Pilih gaya belajar Anda:")
			msg.ReplyMarkup = buildStyleKeyboard()
			h.send(msg)
			return
		}
		flow.prefs.GayaBelajar = value
		h.renderPreferencesDraft(chatID, flow)

	case prefFav:
		if value == "" {
			subjects, err := us.Murid.Subjects(ctx)
			if err != nil {
				h.sendError(chatID, err.Error())
				return
			}
			if len(subjects) == 0 {
				h.send(newPlainMessage(chatID, msgNoSubjects))
				return
			}
			msg := newPlainMessage(chatID, "Pilih mata pelajaran favorit Anda:")
			msg.ReplyMarkup = buildFavoriteKeyboard(subjects)
			h.send(msg)
			return
		}
		flow.prefs.FavoriteSubject = value
		h.renderPreferencesDraft(chatID, flow)

	case prefMinat:
		flow.step = stepPrefsMinat
		h.send(newPlainMessage(chatID, msgAskMinat))

	case prefSave:
		if err := us.Murid.SavePreferences(ctx, flow.prefs); err != nil {
			h.sendError(chatID, err.Error())
			return
		}
		h.flows.clear(chatID)
		h.send(newPlainMessage(chatID, msgPrefsSaved))
		h.renderHome(ctx, chatID, us)
	}
}

func (h *Handler) handleAuthCallback(ctx context.Context, chatID int64, cd callbackData) {
	if len(cd.Params) == 0 {
		return
	}

	switch cd.Params[0] {
	case authLogin:
		h.startLoginFlow(chatID)

	case authRegister:
		h.startRegisterFlow(chatID)

	case authRole:
		flow := h.flows.get(chatID)
		if flow == nil || flow.kind != flowLogin || flow.step != stepLoginRole || len(cd.Params) < 2 {
			return
		}
		role := entities.Role(cd.Params[1])
		if !role.Valid() {
			return
		}
		flow.login.Role = role
		flow.step = stepLoginEmail
		h.send(newPlainMessage(chatID, msgAskEmail))
	}
}

func (h *Handler) handleGuruCallback(ctx context.Context, chatID int64, cd callbackData) {
	us, ok := h.requireRole(ctx, chatID, entities.RoleGuru)
	if !ok || len(cd.Params) == 0 {
		return
	}

	switch cd.Params[0] {
	case guruPending:
		h.renderGuruPending(ctx, chatID, us)

	case guruMurid:
		h.renderGuruMuridList(ctx, chatID, us)

	case guruMapel:
		h.renderGuruSubjects(ctx, chatID, us)

	case guruMateri:
		h.renderGuruMaterials(ctx, chatID, us)

	case guruQuiz:
		h.renderGuruQuizzes(ctx, chatID, us)

	case guruNilai:
		kelas := "all"
		if len(cd.Params) > 1 {
			kelas = cd.Params[1]
		}
		h.renderGuruScores(ctx, chatID, us, kelas)

	case guruVerify:
		muridID, ok := callbackInt(cd, 1)
		if !ok {
			return
		}
		if err := us.Guru.VerifyMurid(ctx, muridID); err != nil {
			h.sendError(chatID, err.Error())
			return
		}
		h.send(newPlainMessage(chatID, msgMuridVerified))
		h.renderGuruPending(ctx, chatID, us)

	case guruDelMapel:
		subjectID, ok := callbackInt(cd, 1)
		if !ok {
			return
		}
		if err := us.Guru.DeleteSubject(ctx, subjectID); err != nil {
			h.sendError(chatID, err.Error())
			return
		}
		h.send(newPlainMessage(chatID, msgSubjectDeleted))
		h.renderGuruSubjects(ctx, chatID, us)

	case guruAddMapel:
		h.handleAddSubjectCallback(ctx, chatID, us, cd)

	case guruAddMateri:
		h.handleAddMaterialCallback(chatID, cd)

	case guruAddQuiz:
		h.handleAddQuizCallback(chatID, cd)

	case guruQuizSoal:
		h.handleQuizSoalCallback(chatID, cd)

	case guruQuizSave:
		h.handleQuizSaveCallback(ctx, chatID, us)
	}
}

// handleAddSubjectCallback both starts the subject creation flow (no
// parameter) and finishes it when the difficulty button carries the level.
func (h *Handler) handleAddSubjectCallback(ctx context.Context, chatID int64, us *storage.UserSession, cd callbackData) {
	if len(cd.Params) < 2 {
		h.flows.set(chatID, &flowState{kind: flowAddSubject, step: stepSubjectNama})
		h.send(newPlainMessage(chatID, msgAskNamaMapel))
		return
	}

	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowAddSubject || flow.step != stepSubjectTingkat {
		return
	}
	flow.subject.TingkatKesulitan = cd.Params[1]
	h.flows.clear(chatID)

	if err := us.Guru.CreateSubject(ctx, flow.subject); err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	h.send(newPlainMessage(chatID, msgSubjectCreated))
	h.renderGuruSubjects(ctx, chatID, us)
}

func (h *Handler) handleAddMaterialCallback(chatID int64, cd callbackData) {
	if len(cd.Params) < 2 {
		h.flows.set(chatID, &flowState{kind: flowAddMaterial, step: stepMaterialJudul})
		h.send(newPlainMessage(chatID, msgAskJudulMateri))
		return
	}

	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowAddMaterial || flow.step != stepMaterialMapel {
		return
	}
	subjectID, ok := callbackInt(cd, 1)
	if !ok {
		return
	}
	flow.material.SubjectID = subjectID
	flow.step = stepMaterialKonten
	h.send(newPlainMessage(chatID, msgAskKonten))
}

func (h *Handler) handleAddQuizCallback(chatID int64, cd callbackData) {
	if len(cd.Params) < 2 {
		h.flows.set(chatID, &flowState{kind: flowAddQuiz, step: stepQuizJudul})
		h.send(newPlainMessage(chatID, msgAskJudulQuiz))
		return
	}

	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowAddQuiz {
		return
	}

	// "soal" loops back for another question; a number is the subject pick.
	if cd.Params[1] == guruQuizSoal {
		if flow.step != stepQuizMenu {
			return
		}
		flow.step = stepQuizPertanyaan
		h.send(newPlainMessage(chatID, msgAskPertanyaan))
		return
	}

	if flow.step != stepQuizMapel {
		return
	}
	subjectID, ok := callbackInt(cd, 1)
	if !ok {
		return
	}
	flow.quiz.SubjectID = subjectID
	flow.step = stepQuizPertanyaan
	h.send(newPlainMessage(chatID, msgAskPertanyaan))
}

// handleQuizSoalCallback records the correct answer for the question being
// authored and appends it to the draft quiz.
func (h *Handler) handleQuizSoalCallback(chatID int64, cd callbackData) {
	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowAddQuiz || flow.step != stepQuizBenar || len(cd.Params) < 2 {
		return
	}

	flow.soal.JawabanBenar = cd.Params[1]
	flow.quiz.Soal = append(flow.quiz.Soal, flow.soal)
	flow.soal = entities.Question{}
	flow.step = stepQuizMenu

	msg := newPlainMessage(chatID, "Pertanyaan ditambahkan. Lanjutkan?")
	msg.ReplyMarkup = buildQuizAuthoringKeyboard()
	h.send(msg)
}

func (h *Handler) handleQuizSaveCallback(ctx context.Context, chatID int64, us *storage.UserSession) {
	flow := h.flows.get(chatID)
	if flow == nil || flow.kind != flowAddQuiz {
		return
	}
	if len(flow.quiz.Soal) == 0 {
		h.send(newPlainMessage(chatID, msgQuizNeedsSoal))
		return
	}
	h.flows.clear(chatID)

	if err := us.Guru.CreateQuiz(ctx, flow.quiz); err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	h.send(newPlainMessage(chatID, msgQuizCreated))
	h.renderGuruQuizzes(ctx, chatID, us)
}

func (h *Handler) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
}

func callbackInt(cd callbackData, index int) (int64, bool) {
	if index >= len(cd.Params) {
		return 0, false
	}
	v, err := strconv.ParseInt(cd.Params[index], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
