package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/apiclient"
	"github.com/belajarku/belajarku-bot/internal/storage"
)

type apiCall struct {
	method string
	params url.Values
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newTestBot builds a bot whose transport records every Bot API call
// instead of reaching Telegram.
func newTestBot(calls *[]apiCall) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  "test-token",
		Buffer: 100,
		Client: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			_ = r.ParseForm()
			*calls = append(*calls, apiCall{method: path.Base(r.URL.Path), params: r.Form})
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":{}}`)),
			}, nil
		})},
	}
	bot.SetAPIEndpoint(tgbotapi.APIEndpoint)
	return bot
}

func newTestHandler(calls *[]apiCall) *Handler {
	sessions := storage.NewSessionRegistry(func() (*storage.UserSession, error) {
		return &storage.UserSession{}, nil
	})
	return NewHandler(newTestBot(calls), zap.NewNop(), sessions)
}

// Telegram delivers callback queries without an attached message when the
// button outlived the callback window. The update loop must shrug, not die.
func TestHandleUpdate_CallbackWithoutMessage(t *testing.T) {
	var calls []apiCall
	h := newTestHandler(&calls)

	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			From: &tgbotapi.User{ID: 99},
			Data: buildDashCallback(),
		},
	}

	assert.NotPanics(t, func() {
		h.handleUpdate(context.Background(), update)
	})

	// The stale button is dismissed, nothing else happens.
	require.Len(t, calls, 1)
	assert.Equal(t, "answerCallbackQuery", calls[0].method)
	assert.Equal(t, "cb1", calls[0].params.Get("callback_query_id"))
}

func TestWithErrorHandling_BackendMessageVerbatim(t *testing.T) {
	var calls []apiCall
	h := newTestHandler(&calls)

	err := h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		return &apiclient.APIError{Status: http.StatusUnauthorized, Message: "Email atau password salah"}
	})(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, "sendMessage", calls[0].method)
	assert.Equal(t, "Email atau password salah", calls[0].params.Get("text"))
}

func TestWithErrorHandling_UnexpectedErrorDegrades(t *testing.T) {
	var calls []apiCall
	h := newTestHandler(&calls)

	err := h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		return errors.New("dial tcp: connection refused")
	})(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, "sendMessage", calls[0].method)
	assert.Equal(t, msgInternalError, calls[0].params.Get("text"))
}
