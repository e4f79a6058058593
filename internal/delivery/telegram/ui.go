package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

// buildMenuKeyboard builds the main menu keyboard.
func buildMenuKeyboard(reminderOn bool) tgbotapi.InlineKeyboardMarkup {
	reminderLabel := "🔔 Daily reminder: off"
	if reminderOn {
		reminderLabel = "🔕 Daily reminder: on"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Topic quiz", buildMenuCallback(menuTopic)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Daily challenge", buildMenuCallback(menuDaily)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔖 Bookmarks", buildMenuCallback(menuBookmarks)),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Review mistakes", buildMenuCallback(menuReview)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(reminderLabel, buildReminderToggleCallback()),
		),
	)
}

// buildListKeyboard builds a one-button-per-row keyboard over labels,
// with callback data produced from the label index.
func buildListKeyboard(labels []string, data func(i int) string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(labels))
	for i, label := range labels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data(i)),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildCountKeyboard builds the question-count keyboard for a topic.
func buildCountKeyboard(year, module, topic int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("5", buildCountCallback(year, module, topic, 5)),
			tgbotapi.NewInlineKeyboardButtonData("10", buildCountCallback(year, module, topic, 10)),
			tgbotapi.NewInlineKeyboardButtonData("20", buildCountCallback(year, module, topic, 20)),
			tgbotapi.NewInlineKeyboardButtonData("All", buildCountCallback(year, module, topic, 0)),
		),
	)
}

// buildTimerKeyboard builds the timer on/off keyboard.
func buildTimerKeyboard(year, module, topic, count int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Timer on", buildStartCallback(year, module, topic, count, 1)),
			tgbotapi.NewInlineKeyboardButtonData("🐢 No timer", buildStartCallback(year, module, topic, count, 0)),
		),
	)
}

// buildQuestionKeyboard builds the choice buttons for a question plus
// the bookmark and stop row.
func buildQuestionKeyboard(q entities.Question, bookmarked bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Choices)+1)
	for i, choice := range q.Choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice, buildAnswerCallback(i)),
		))
	}

	bookmarkLabel := "🔖 Bookmark"
	if bookmarked {
		bookmarkLabel = "✅ Bookmarked"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(bookmarkLabel, buildBookmarkCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Quit", buildStopCallback()),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildNextKeyboard builds the keyboard shown with answer feedback.
func buildNextKeyboard(bookmarked bool) tgbotapi.InlineKeyboardMarkup {
	bookmarkLabel := "🔖 Bookmark"
	if bookmarked {
		bookmarkLabel = "✅ Bookmarked"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Next", buildNextCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(bookmarkLabel, buildBookmarkCallback()),
		),
	)
}

// buildReportKeyboard builds the end screen keyboard.
func buildReportKeyboard(hasMistakes bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildMenuCallback(menuHome)),
		),
	}
	if hasMistakes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Review mistakes", buildMenuCallback(menuReview)),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildBookmarksKeyboard builds the bookmarks screen keyboard.
func buildBookmarksKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Quiz my bookmarks", buildMenuCallback(menuBookmarkQuiz)),
		),
	)
}
