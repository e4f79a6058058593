package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/oubmed/medquiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionMenu:
		h.handleMenuCallback(chatID, data)
	case actionSelection:
		h.handleSelectionCallback(ctx, chatID, data)
	case actionQuiz:
		h.handleQuizCallback(chatID, cb, data)
	case actionReminder:
		h.handleReminderCallback(chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleMenuCallback(chatID int64, data callbackData) {
	if len(data.Params) != 1 {
		return
	}

	switch data.Params[0] {
	case menuTopic:
		h.sendYearSelection(chatID)
	case menuDaily:
		h.startDaily(chatID)
	case menuBookmarks:
		h.sendBookmarksScreen(chatID)
	case menuBookmarkQuiz:
		h.startBookmarked(chatID)
	case menuReview:
		h.startReview(chatID)
	case menuHome:
		h.quiz.End(chatID)
		h.sendMenu(chatID, msgWelcome)
	}
}

func (h *Handler) handleReminderCallback(chatID int64) {
	if h.reminder.Toggle(chatID) {
		h.sendMenu(chatID, msgReminderOn)
	} else {
		h.sendMenu(chatID, msgReminderOff)
	}
}

// --- Topic selection flow ---

func (h *Handler) sendYearSelection(chatID int64) {
	msg := newHTMLMessage(chatID, msgChooseYear)
	msg.ReplyMarkup = buildListKeyboard(h.catalog.Years(), buildYearCallback)
	h.send(msg)
}

// handleSelectionCallback walks the year -> module -> topic -> count ->
// timer flow. Every step carries the accumulated indices into the sorted
// catalog accessors; the final step resolves them back to names and
// starts the session.
func (h *Handler) handleSelectionCallback(ctx context.Context, chatID int64, data callbackData) {
	if len(data.Params) < 2 {
		return
	}

	idx, ok := atoiAll(data.Params[1:])
	if !ok {
		h.logger.Error("invalid selection callback", zap.String("data", data.Raw))
		return
	}

	switch data.Params[0] {
	case selYear:
		years := h.catalog.Years()
		if len(idx) != 1 || idx[0] >= len(years) {
			return
		}
		msg := newHTMLMessage(chatID, msgChooseModule)
		msg.ReplyMarkup = buildListKeyboard(h.catalog.Modules(years[idx[0]]), func(i int) string {
			return buildModuleCallback(idx[0], i)
		})
		h.send(msg)

	case selModule:
		year, ok := h.yearAt(idx, 0)
		if !ok || len(idx) != 2 {
			return
		}
		modules := h.catalog.Modules(year)
		if idx[1] >= len(modules) {
			return
		}
		msg := newHTMLMessage(chatID, msgChooseTopic)
		msg.ReplyMarkup = buildListKeyboard(h.catalog.Topics(year, modules[idx[1]]), func(i int) string {
			return buildTopicCallback(idx[0], idx[1], i)
		})
		h.send(msg)

	case selTopic:
		if len(idx) != 3 {
			return
		}
		msg := newHTMLMessage(chatID, msgChooseCount)
		msg.ReplyMarkup = buildCountKeyboard(idx[0], idx[1], idx[2])
		h.send(msg)

	case selCount:
		if len(idx) != 4 {
			return
		}
		msg := newHTMLMessage(chatID, msgChooseTimer)
		msg.ReplyMarkup = buildTimerKeyboard(idx[0], idx[1], idx[2], idx[3])
		h.send(msg)

	case selStart:
		if len(idx) != 5 {
			return
		}
		h.startTopic(ctx, chatID, idx[0], idx[1], idx[2], idx[3], idx[4] == 1)
	}
}

// yearAt resolves a year index from selection params.
func (h *Handler) yearAt(idx []int, pos int) (string, bool) {
	years := h.catalog.Years()
	if pos >= len(idx) || idx[pos] >= len(years) {
		return "", false
	}
	return years[idx[pos]], true
}

func (h *Handler) startTopic(ctx context.Context, chatID int64, yi, mi, ti, count int, timer bool) {
	year, ok := h.yearAt([]int{yi}, 0)
	if !ok {
		return
	}
	modules := h.catalog.Modules(year)
	if mi >= len(modules) {
		return
	}
	topics := h.catalog.Topics(year, modules[mi])
	if ti >= len(topics) {
		return
	}

	_, err := h.quiz.StartTopic(ctx, chatID, year, modules[mi], topics[ti], count)
	if err != nil {
		h.logger.Warn("failed to start topic quiz", zap.Error(err))
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			h.sendMenu(chatID, msgNoQuestions)
		} else {
			h.sendMenu(chatID, msgQuizUnavailable)
		}
		return
	}

	h.setTimerOn(chatID, timer)
	h.sendQuestion(chatID)
}

// --- Mode starts ---

func (h *Handler) startDaily(chatID int64) {
	_, err := h.quiz.StartDaily(chatID)
	switch {
	case errors.Is(err, service.ErrMasterListNotReady):
		h.sendMenu(chatID, msgDailyNotReady)
		return
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		h.sendMenu(chatID, msgNoQuestions)
		return
	case err != nil:
		h.logger.Error("failed to start daily challenge", zap.Error(err))
		h.sendMenu(chatID, msgInternalError)
		return
	}

	h.setTimerOn(chatID, false)
	h.sendQuestion(chatID)
}

func (h *Handler) startBookmarked(chatID int64) {
	_, err := h.quiz.StartBookmarked(chatID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			h.sendMenu(chatID, msgNoBookmarks)
		} else {
			h.logger.Error("failed to start bookmarked quiz", zap.Error(err))
			h.sendMenu(chatID, msgInternalError)
		}
		return
	}

	h.setTimerOn(chatID, false)
	h.sendQuestion(chatID)
}

func (h *Handler) startReview(chatID int64) {
	_, err := h.quiz.StartReview(chatID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsAvailable) {
			h.sendMenu(chatID, msgNothingToReview)
		} else {
			h.logger.Error("failed to start review quiz", zap.Error(err))
			h.sendMenu(chatID, msgInternalError)
		}
		return
	}

	h.setTimerOn(chatID, false)
	h.sendQuestion(chatID)
}

func (h *Handler) sendBookmarksScreen(chatID int64) {
	questions := h.quiz.BookmarkedQuestions()
	if len(questions) == 0 {
		h.sendMenu(chatID, msgNoBookmarks)
		return
	}

	msg := newHTMLMessage(chatID, formatBookmarks(questions))
	msg.ReplyMarkup = buildBookmarksKeyboard()
	h.send(msg)
}

// --- Gameplay ---

func (h *Handler) sendQuestion(chatID int64) {
	session, ok := h.quiz.Session(chatID)
	if !ok {
		return
	}
	q, err := session.Current()
	if err != nil {
		h.logger.Error("no current question to render", zap.Error(err))
		return
	}

	timerSeconds := 0
	if h.timerEnabled(chatID) {
		timerSeconds = h.quiz.QuestionSeconds()
	}

	if q.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(q.Image))
		h.send(photo)
	}

	msg := newHTMLMessage(chatID, formatQuestion(session, q, timerSeconds))
	msg.ReplyMarkup = buildQuestionKeyboard(q, h.quiz.CurrentBookmarked(chatID))
	h.send(msg)

	if timerSeconds > 0 {
		h.quiz.ArmCountdown(chatID, func() { h.handleTimeout(chatID) })
	}
}

// handleTimeout fires when the countdown expires: the miss is recorded
// as an empty submission. A user answer that raced the expiry wins,
// because it either cancelled the countdown or already marked the
// question answered.
func (h *Handler) handleTimeout(chatID int64) {
	result, err := h.quiz.Answer(chatID, "")
	if err != nil {
		h.logger.Debug("timeout after answer, ignoring", zap.Error(err))
		return
	}

	msg := newHTMLMessage(chatID, msgTimeUp+"\n\n"+formatAnswerResult(result))
	msg.ReplyMarkup = buildNextKeyboard(h.quiz.CurrentBookmarked(chatID))
	h.send(msg)
}

func (h *Handler) handleQuizCallback(chatID int64, cb *tgbotapi.CallbackQuery, data callbackData) {
	if len(data.Params) == 0 {
		return
	}

	switch data.Params[0] {
	case quizAnswer:
		if len(data.Params) != 2 {
			return
		}
		choice, err := strconv.Atoi(data.Params[1])
		if err != nil {
			return
		}
		h.handleAnswer(chatID, cb, choice)

	case quizNext:
		h.handleNext(chatID)

	case quizBookmark:
		h.handleBookmarkToggle(chatID, cb)

	case quizStop:
		h.quiz.End(chatID)
		h.sendMenu(chatID, msgWelcome)
	}
}

func (h *Handler) handleAnswer(chatID int64, cb *tgbotapi.CallbackQuery, choice int) {
	session, ok := h.quiz.Session(chatID)
	if !ok {
		return
	}
	q, err := session.Current()
	if err != nil || choice < 0 || choice >= len(q.Choices) {
		return
	}

	result, err := h.quiz.Answer(chatID, q.Choices[choice])
	if err != nil {
		// A stale button press after answering or a finished run.
		h.logger.Debug("answer rejected", zap.Error(err))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID,
		formatQuestion(session, q, 0)+"\n\n"+formatAnswerResult(result))
	edit.ParseMode = tgbotapi.ModeHTML
	kb := buildNextKeyboard(h.quiz.CurrentBookmarked(chatID))
	edit.ReplyMarkup = &kb
	h.send(edit)
}

func (h *Handler) handleNext(chatID int64) {
	finished, err := h.quiz.Advance(chatID)
	if err != nil {
		h.logger.Debug("advance rejected", zap.Error(err))
		return
	}

	if finished {
		h.sendReport(chatID)
		return
	}
	h.sendQuestion(chatID)
}

func (h *Handler) sendReport(chatID int64) {
	report, ok := h.quiz.Report(chatID)
	if !ok {
		h.logger.Error("finished session without report")
		return
	}

	msg := newHTMLMessage(chatID, formatReport(*report))
	msg.ReplyMarkup = buildReportKeyboard(len(report.Mistakes) > 0)
	h.send(msg)
}

func (h *Handler) handleBookmarkToggle(chatID int64, cb *tgbotapi.CallbackQuery) {
	bookmarked, err := h.quiz.ToggleBookmark(chatID)
	if err != nil {
		h.logger.Debug("bookmark toggle rejected", zap.Error(err))
		return
	}

	session, ok := h.quiz.Session(chatID)
	if !ok {
		return
	}

	var kb tgbotapi.InlineKeyboardMarkup
	if session.Answered() {
		kb = buildNextKeyboard(bookmarked)
	} else {
		q, err := session.Current()
		if err != nil {
			return
		}
		kb = buildQuestionKeyboard(q, bookmarked)
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, kb)
	h.send(edit)
}

// atoiAll parses every param as an int, rejecting negatives.
func atoiAll(params []string) ([]int, bool) {
	out := make([]int, len(params))
	for i, p := range params {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
