package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/oubmed/medquiz-bot/internal/config"
	"github.com/oubmed/medquiz-bot/internal/delivery/telegram"
	"github.com/oubmed/medquiz-bot/internal/logger"
	"github.com/oubmed/medquiz-bot/internal/repository"
	"github.com/oubmed/medquiz-bot/internal/service"
	"github.com/oubmed/medquiz-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zapLogger.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "quiz", Description: "Pick a year, module and topic"},
		{Command: "daily", Description: "Daily challenge"},
		{Command: "bookmarks", Description: "Bookmarked questions"},
		{Command: "review", Description: "Review your last mistakes"},
		{Command: "help", Description: "Help"},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zapLogger.Warn("failed to set bot commands", zap.Error(err))
	}

	zapLogger.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories. A broken catalog manifest is fatal; a
	// broken bookmark or subscriber file only loses a convenience.
	catalogRepo, err := repository.NewCatalogRepository(cfg.Data.ManifestPath, cfg.Data.Dir, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to load catalog", zap.Error(err))
	}

	bookmarkRepo := repository.NewBookmarkRepository(cfg.Data.BookmarksPath, zapLogger)
	subscriberRepo := repository.NewSubscriberRepository(cfg.Data.SubscribersPath, zapLogger)

	// Preload every bank for the daily, bookmark and review modes.
	catalogRepo.BuildMasterList(ctx)

	sessions := storage.NewSessionStorage()
	selector := service.NewQuestionSelector(catalogRepo, bookmarkRepo)
	quizService := service.NewQuizService(selector, catalogRepo, bookmarkRepo, sessions, cfg.Quiz, zapLogger)
	catalogService := service.NewCatalogService(catalogRepo)
	reminderService := service.NewReminderService(subscriberRepo, cfg.Reminder.Hour, zapLogger)

	handler := telegram.NewHandler(
		bot,
		zapLogger,
		quizService,
		catalogService,
		reminderService,
	)
	reminderService.SetNotifier(handler)

	if cfg.Reminder.Enabled {
		go reminderService.Start(ctx)
	}

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zapLogger.Fatal("handler stopped", zap.Error(err))
	}

	zapLogger.Info("shutdown signal received")
}
