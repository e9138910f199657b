package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/access"
	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/storage"
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	sessions *storage.SessionRegistry
	flows    *flowStore
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	sessions *storage.SessionRegistry,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		sessions: sessions,
		flows:    newFlowStore(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		// A command interrupts whatever conversation was in progress.
		h.flows.clear(chatID)

		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.homeHandler)(ctx, chatID)

		case "help":
			h.send(newPlainMessage(chatID, msgHelp))

		case "dasbor":
			_ = h.withErrorHandling(h.homeHandler)(ctx, chatID)

		case "masuk":
			_ = h.withErrorHandling(h.loginHandler)(ctx, chatID)

		case "daftar":
			_ = h.withErrorHandling(h.registerHandler)(ctx, chatID)

		case "keluar":
			_ = h.withErrorHandling(h.logoutHandler)(ctx, chatID)

		case "preferensi":
			_ = h.withErrorHandling(h.preferencesHandler)(ctx, chatID)

		case "nilai":
			_ = h.withErrorHandling(h.scoresHandler)(ctx, chatID)

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	if h.handleFlowMessage(ctx, chatID, update.Message.MessageID, update.Message.Text) {
		return
	}

	h.send(newPlainMessage(chatID, msgUnknownCommand))
}

func (h *Handler) homeHandler(ctx context.Context, chatID int64) error {
	us, err := h.sessions.GetOrCreate(chatID)
	if err != nil {
		return err
	}
	h.renderHome(ctx, chatID, us)
	return nil
}

func (h *Handler) loginHandler(ctx context.Context, chatID int64) error {
	us, err := h.sessions.GetOrCreate(chatID)
	if err != nil {
		return err
	}
	if us.Auth.Initialize(ctx).Authenticated() {
		h.send(newPlainMessage(chatID, msgAlreadyLoggedIn))
		return nil
	}
	h.startLoginFlow(chatID)
	return nil
}

func (h *Handler) registerHandler(ctx context.Context, chatID int64) error {
	us, err := h.sessions.GetOrCreate(chatID)
	if err != nil {
		return err
	}
	if us.Auth.Initialize(ctx).Authenticated() {
		h.send(newPlainMessage(chatID, msgAlreadyLoggedIn))
		return nil
	}
	h.startRegisterFlow(chatID)
	return nil
}

// logoutHandler ends the session and drops the chat's client bundle so the
// next contact starts with a fresh cookie jar.
func (h *Handler) logoutHandler(ctx context.Context, chatID int64) error {
	us, ok := h.sessions.Get(chatID)
	if !ok {
		h.send(newPlainMessage(chatID, msgPleaseLogin))
		return nil
	}

	if err := us.Auth.Logout(ctx); err != nil {
		// The local session is anonymous regardless; the backend call is
		// best effort.
		h.logger.Warn("logout request failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	h.sessions.Delete(chatID)
	h.send(newPlainMessage(chatID, msgLoggedOut))
	return nil
}

func (h *Handler) preferencesHandler(ctx context.Context, chatID int64) error {
	us, ok := h.requireRole(ctx, chatID, entities.RoleMurid)
	if !ok {
		return nil
	}
	h.openPreferences(ctx, chatID, us)
	return nil
}

func (h *Handler) scoresHandler(ctx context.Context, chatID int64) error {
	us, ok := h.requireRole(ctx, chatID, entities.RoleGuru)
	if !ok {
		return nil
	}
	h.renderGuruScores(ctx, chatID, us, "all")
	return nil
}

// requireRole settles the chat's session and applies the access decision
// for a role-gated view. On RedirectAuth it prompts for login, on
// RedirectHome it renders the chat's own landing view.
func (h *Handler) requireRole(ctx context.Context, chatID int64, roles ...entities.Role) (*storage.UserSession, bool) {
	us, err := h.sessions.GetOrCreate(chatID)
	if err != nil {
		h.logger.Error("failed to get user session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(chatID, msgInternalError)
		return nil, false
	}

	snap := us.Auth.Initialize(ctx)
	switch access.Decide(snap, roles...) {
	case access.Allow:
		return us, true

	case access.RedirectAuth:
		h.send(newPlainMessage(chatID, msgPleaseLogin))
		return nil, false

	default:
		h.send(newPlainMessage(chatID, msgWrongRole))
		h.renderHome(ctx, chatID, us)
		return nil, false
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
