package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

type QuizService interface {
	StartTopic(ctx context.Context, chatID int64, year, module, topic string, count int) (*entities.Session, error)
	StartDaily(chatID int64) (*entities.Session, error)
	StartBookmarked(chatID int64) (*entities.Session, error)
	StartReview(chatID int64) (*entities.Session, error)
	Session(chatID int64) (*entities.Session, bool)
	End(chatID int64)
	Answer(chatID int64, choice string) (entities.AnswerResult, error)
	Advance(chatID int64) (bool, error)
	ArmCountdown(chatID int64, fire func())
	QuestionSeconds() int
	ToggleBookmark(chatID int64) (bool, error)
	CurrentBookmarked(chatID int64) bool
	BookmarkedQuestions() []entities.Question
	Report(chatID int64) (*entities.Report, bool)
}

type CatalogService interface {
	Years() []string
	Modules(year string) []string
	Topics(year, module string) []string
	MasterCount() int
}

type ReminderService interface {
	Toggle(chatID int64) bool
	IsSubscribed(chatID int64) bool
}

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	quiz     QuizService
	catalog  CatalogService
	reminder ReminderService

	// timerOn remembers, per chat, whether the user asked for the
	// per-question countdown when starting the current session. View
	// state only, so it lives here rather than in the engine.
	mu      sync.Mutex
	timerOn map[int64]bool
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quiz QuizService,
	catalog CatalogService,
	reminder ReminderService,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		quiz:     quiz,
		catalog:  catalog,
		reminder: reminder,
		timerOn:  make(map[int64]bool),
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
			zap.Int64("chat_id", update.CallbackQuery.Message.Chat.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.sendMenu(chatID, msgWelcome)

		case "quiz":
			h.sendYearSelection(chatID)

		case "daily":
			h.startDaily(chatID)

		case "bookmarks":
			h.sendBookmarksScreen(chatID)

		case "review":
			h.startReview(chatID)

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}
}

// SendDailyReminder implements the reminder notifier: it prompts a
// subscribed chat to take the daily challenge.
func (h *Handler) SendDailyReminder(chatID int64) error {
	msg := newHTMLMessage(chatID, msgDailyReminder)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start now", buildMenuCallback(menuDaily)),
		),
	)

	_, err := h.bot.Send(msg)
	return err
}

func (h *Handler) sendMenu(chatID int64, text string) {
	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildMenuKeyboard(h.reminder.IsSubscribed(chatID))
	h.send(msg)
}

func (h *Handler) setTimerOn(chatID int64, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timerOn[chatID] = on
}

func (h *Handler) timerEnabled(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timerOn[chatID]
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
}
