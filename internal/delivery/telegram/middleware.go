package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/apiclient"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns a handler error into a chat message instead of
// letting it escape the update loop. Backend rejections carry a
// human-readable message and are shown verbatim; transport failures and
// everything else degrade to the generic internal error.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)

		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			h.sendError(chatID, apiErr.Message)
			return nil
		}

		h.sendError(chatID, msgInternalError)
		return nil
	}
}
