package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/domain/entities"
)

// flowKind identifies a multi-step conversation in progress for a chat.
type flowKind int

const (
	flowNone flowKind = iota
	flowLogin
	flowRegister
	flowPrefs
	flowAddSubject
	flowAddMaterial
	flowAddQuiz
)

// Login steps.
const (
	stepLoginRole = iota
	stepLoginEmail
	stepLoginPassword
)

// Register steps.
const (
	stepRegisterNama = iota
	stepRegisterKelas
	stepRegisterEmail
	stepRegisterPassword
)

// Preferences steps.
const (
	stepPrefsMenu = iota
	stepPrefsMinat
)

// Subject creation steps.
const (
	stepSubjectNama = iota
	stepSubjectDeskripsi
	stepSubjectTingkat
)

// Material creation steps.
const (
	stepMaterialJudul = iota
	stepMaterialMapel
	stepMaterialKonten
)

// Quiz creation steps.
const (
	stepQuizJudul = iota
	stepQuizMapel
	stepQuizPertanyaan
	stepQuizPilihanA
	stepQuizPilihanB
	stepQuizPilihanC
	stepQuizPilihanD
	stepQuizBenar
	stepQuizMenu
)

// flowState is the accumulated input of one conversation.
type flowState struct {
	kind flowKind
	step int

	login    entities.LoginRequest
	register entities.RegisterRequest
	prefs    entities.Preferences
	subject  entities.NewSubjectRequest
	material entities.NewMaterialRequest
	quiz     entities.NewQuizRequest
	soal     entities.Question
}

// flowStore keeps per-chat conversation state in memory.
type flowStore struct {
	mu    sync.Mutex
	flows map[int64]*flowState
}

func newFlowStore() *flowStore {
	return &flowStore{flows: make(map[int64]*flowState)}
}

func (f *flowStore) get(chatID int64) *flowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flows[chatID]
}

func (f *flowStore) set(chatID int64, state *flowState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flows[chatID] = state
}

func (f *flowStore) clear(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.flows, chatID)
}

func (h *Handler) startLoginFlow(chatID int64) {
	h.flows.set(chatID, &flowState{kind: flowLogin, step: stepLoginRole})
	msg := newPlainMessage(chatID, msgAskRole)
	msg.ReplyMarkup = buildRoleKeyboard()
	h.send(msg)
}

func (h *Handler) startRegisterFlow(chatID int64) {
	h.flows.set(chatID, &flowState{kind: flowRegister, step: stepRegisterNama})
	h.send(newPlainMessage(chatID, msgAskNama))
}

// handleFlowMessage feeds a plain text message into the active conversation.
// It reports whether the message was consumed.
func (h *Handler) handleFlowMessage(ctx context.Context, chatID int64, messageID int, text string) bool {
	flow := h.flows.get(chatID)
	if flow == nil {
		return false
	}

	switch flow.kind {
	case flowLogin:
		return h.advanceLoginFlow(ctx, chatID, messageID, flow, text)
	case flowRegister:
		return h.advanceRegisterFlow(ctx, chatID, messageID, flow, text)
	case flowPrefs:
		return h.advancePrefsFlow(ctx, chatID, flow, text)
	case flowAddSubject:
		return h.advanceSubjectFlow(ctx, chatID, flow, text)
	case flowAddMaterial:
		return h.advanceMaterialFlow(ctx, chatID, flow, text)
	case flowAddQuiz:
		return h.advanceQuizFlow(ctx, chatID, flow, text)
	}
	return false
}

func (h *Handler) advanceLoginFlow(ctx context.Context, chatID int64, messageID int, flow *flowState, text string) bool {
	switch flow.step {
	case stepLoginEmail:
		flow.login.Email = text
		flow.step = stepLoginPassword
		h.send(newPlainMessage(chatID, msgAskPassword))
		return true

	case stepLoginPassword:
		flow.login.Password = text
		h.flows.clear(chatID)

		// Drop the password from the chat history.
		h.deleteMessage(chatID, messageID)

		us, err := h.sessions.GetOrCreate(chatID)
		if err != nil {
			h.logger.Error("failed to get user session", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, msgInternalError)
			return true
		}

		user, err := us.Auth.Login(ctx, flow.login)
		if err != nil {
			// Login failure leaves the session anonymous; the backend's
			// error string is shown verbatim.
			h.sendError(chatID, err.Error())
			return true
		}

		h.logger.Info("user logged in",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", user.ID),
			zap.String("role", string(user.Role)),
		)
		h.renderHome(ctx, chatID, us)
		return true
	}
	return false
}

func (h *Handler) advanceRegisterFlow(ctx context.Context, chatID int64, messageID int, flow *flowState, text string) bool {
	switch flow.step {
	case stepRegisterNama:
		flow.register.Nama = text
		flow.step = stepRegisterKelas
		h.send(newPlainMessage(chatID, msgAskKelas))
		return true

	case stepRegisterKelas:
		flow.register.Kelas = text
		flow.step = stepRegisterEmail
		h.send(newPlainMessage(chatID, msgAskEmail))
		return true

	case stepRegisterEmail:
		flow.register.Email = text
		flow.step = stepRegisterPassword
		h.send(newPlainMessage(chatID, msgAskPassword))
		return true

	case stepRegisterPassword:
		flow.register.Password = text
		h.flows.clear(chatID)
		h.deleteMessage(chatID, messageID)

		us, err := h.sessions.GetOrCreate(chatID)
		if err != nil {
			h.logger.Error("failed to get user session", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, msgInternalError)
			return true
		}

		// Registration never authenticates: the account stays pending
		// until a guru verifies it.
		if err := us.Auth.Register(ctx, flow.register); err != nil {
			h.sendError(chatID, err.Error())
			return true
		}
		h.send(newPlainMessage(chatID, msgRegistered))
		return true
	}
	return false
}

func (h *Handler) advancePrefsFlow(ctx context.Context, chatID int64, flow *flowState, text string) bool {
	if flow.step != stepPrefsMinat {
		return false
	}
	flow.prefs.MinatBidang = text
	flow.step = stepPrefsMenu
	h.renderPreferencesDraft(chatID, flow)
	return true
}

func (h *Handler) advanceSubjectFlow(ctx context.Context, chatID int64, flow *flowState, text string) bool {
	switch flow.step {
	case stepSubjectNama:
		flow.subject.NamaMapel = text
		flow.step = stepSubjectDeskripsi
		h.send(newPlainMessage(chatID, msgAskDeskripsi))
		return true

	case stepSubjectDeskripsi:
		flow.subject.Deskripsi = text
		flow.step = stepSubjectTingkat
		msg := newPlainMessage(chatID, msgAskTingkat)
		msg.ReplyMarkup = buildDifficultyKeyboard()
		h.send(msg)
		return true
	}
	return false
}

func (h *Handler) advanceMaterialFlow(ctx context.Context, chatID int64, flow *flowState, text string) bool {
	switch flow.step {
	case stepMaterialJudul:
		flow.material.Judul = text
		flow.step = stepMaterialMapel
		h.askSubjectPick(ctx, chatID, msgAskMapelForMateri, guruAddMateri)
		return true

	case stepMaterialKonten:
		flow.material.Konten = text
		h.flows.clear(chatID)

		us, ok := h.requireRole(ctx, chatID, entities.RoleGuru)
		if !ok {
			return true
		}
		if err := us.Guru.CreateMaterial(ctx, flow.material); err != nil {
			h.sendError(chatID, err.Error())
			return true
		}
		h.send(newPlainMessage(chatID, msgMaterialCreated))
		h.renderGuruMaterials(ctx, chatID, us)
		return true
	}
	return false
}

func (h *Handler) advanceQuizFlow(ctx context.Context, chatID int64, flow *flowState, text string) bool {
	switch flow.step {
	case stepQuizJudul:
		flow.quiz.Judul = text
		flow.step = stepQuizMapel
		h.askSubjectPick(ctx, chatID, msgAskMapelForQuiz, guruAddQuiz)
		return true

	case stepQuizPertanyaan:
		flow.soal = entities.Question{Pertanyaan: text}
		flow.step = stepQuizPilihanA
		h.send(newPlainMessage(chatID, "Masukkan pilihan A:"))
		return true

	case stepQuizPilihanA:
		flow.soal.PilihanA = text
		flow.step = stepQuizPilihanB
		h.send(newPlainMessage(chatID, "Masukkan pilihan B:"))
		return true

	case stepQuizPilihanB:
		flow.soal.PilihanB = text
		flow.step = stepQuizPilihanC
		h.send(newPlainMessage(chatID, "Masukkan pilihan C:"))
		return true

	case stepQuizPilihanC:
		flow.soal.PilihanC = text
		flow.step = stepQuizPilihanD
		h.send(newPlainMessage(chatID, "Masukkan pilihan D:"))
		return true

	case stepQuizPilihanD:
		flow.soal.PilihanD = text
		flow.step = stepQuizBenar
		msg := newPlainMessage(chatID, msgAskJawabanBenar)
		msg.ReplyMarkup = buildCorrectAnswerKeyboard()
		h.send(msg)
		return true
	}
	return false
}

// askSubjectPick sends the guru's subject catalog as a picker for a flow.
func (h *Handler) askSubjectPick(ctx context.Context, chatID int64, prompt, subAction string) {
	us, ok := h.requireRole(ctx, chatID, entities.RoleGuru)
	if !ok {
		return
	}
	subjects, err := us.Guru.Subjects(ctx)
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}
	if len(subjects) == 0 {
		h.flows.clear(chatID)
		h.send(newPlainMessage(chatID, msgNoSubjects))
		return
	}
	msg := newPlainMessage(chatID, prompt)
	msg.ReplyMarkup = buildSubjectPickKeyboard(subjects, subAction)
	h.send(msg)
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	del := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := h.bot.Request(del); err != nil {
		h.logger.Debug("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}
