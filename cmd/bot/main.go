package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/apiclient"
	"github.com/belajarku/belajarku-bot/internal/config"
	"github.com/belajarku/belajarku-bot/internal/delivery/telegram"
	"github.com/belajarku/belajarku-bot/internal/logger"
	"github.com/belajarku/belajarku-bot/internal/service"
	"github.com/belajarku/belajarku-bot/internal/session"
	"github.com/belajarku/belajarku-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Mulai bot",
		},
		{
			Command:     "dasbor",
			Description: "Buka dasbor sesuai peran Anda",
		},
		{
			Command:     "masuk",
			Description: "Masuk ke akun Anda",
		},
		{
			Command:     "daftar",
			Description: "Buat akun murid baru",
		},
		{
			Command:     "preferensi",
			Description: "Atur preferensi belajar (murid)",
		},
		{
			Command:     "nilai",
			Description: "Lihat nilai murid (guru)",
		},
		{
			Command:     "keluar",
			Description: "Keluar dari akun",
		},
		{
			Command:     "help",
			Description: "Bantuan",
		},
	}

	_, err = bot.Request(tgbotapi.NewSetMyCommands(commands...))
	if err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Every chat gets its own API client and thus its own cookie jar, so
	// backend sessions never leak between Telegram users.
	sessions := storage.NewSessionRegistry(func() (*storage.UserSession, error) {
		client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
		if err != nil {
			return nil, err
		}

		return &storage.UserSession{
			Auth:  session.NewStore(service.NewAuthService(client)),
			Guru:  service.NewGuruService(client),
			Murid: service.NewMuridService(client),
		}, nil
	})

	handler := telegram.NewHandler(bot, zl, sessions)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
