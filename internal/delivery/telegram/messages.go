// messages.go contains message templates and formatting helpers.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

const (
	msgWelcome = "Welcome to the med quiz!\n\nPick a topic quiz, take the daily challenge, " +
		"rerun your bookmarked questions or review what you got wrong last time."
	msgHelp = "Commands:\n\n/quiz — pick a year, module and topic\n/daily — daily challenge\n" +
		"/bookmarks — your bookmarked questions\n/review — redo your last mistakes\n/help — this message"
	msgUnknownCommand = "Unknown command. Use /help to see what I can do."

	msgNoQuestions     = "No questions available for this quiz."
	msgDailyNotReady   = "Questions are still loading, please try again in a moment."
	msgNoBookmarks     = "You haven't bookmarked any questions yet."
	msgNothingToReview = "Nothing to review — no mistakes in your last quiz. Well done!"
	msgQuizUnavailable = "Could not start this quiz. Please try another topic."
	msgInternalError   = "Something went wrong. Please try again."
	msgTimeUp          = "⏰ Time's up!"
	msgReminderOn      = "Daily challenge reminder is on."
	msgReminderOff     = "Daily challenge reminder is off."
	msgDailyReminder   = "🎯 Your daily challenge is ready! Ten random questions from the whole catalog."
	msgChooseYear      = "Choose a year:"
	msgChooseModule    = "Choose a module:"
	msgChooseTopic     = "Choose a topic:"
	msgChooseCount     = "How many questions?"
	msgChooseTimer     = "Play with a per-question timer?"
)

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// formatQuestion renders the quiz screen text for the current question.
func formatQuestion(session *entities.Session, q entities.Question, timerSeconds int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>Q %d/%d</b>", session.CurrentIndex+1, len(session.Questions))
	if q.SourceTopic != "" {
		fmt.Fprintf(&b, " · %s", q.SourceTopic)
	}
	if timerSeconds > 0 {
		fmt.Fprintf(&b, " · ⏱ %ds", timerSeconds)
	}
	fmt.Fprintf(&b, "\nScore: %d\n\n%s", session.Score, q.Text)

	return b.String()
}

// formatAnswerResult renders the feedback shown between answering and
// advancing.
func formatAnswerResult(result entities.AnswerResult) string {
	var b strings.Builder

	if result.Correct {
		b.WriteString("✅ <b>Correct!</b>")
	} else {
		fmt.Fprintf(&b, "❌ <b>Incorrect.</b>\nThe answer is: %s", result.CorrectAnswer)
	}
	if result.Explanation != "" {
		fmt.Fprintf(&b, "\n\n%s", result.Explanation)
	}

	return b.String()
}

// formatReport renders the end screen.
func formatReport(report entities.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏁 <b>Quiz finished!</b>\n\nScore: <b>%d</b>\nQuestions: %d", report.Score, report.TotalQuestions)
	if len(report.Mistakes) > 0 {
		fmt.Fprintf(&b, "\nMissed: %d", len(report.Mistakes))
	} else {
		b.WriteString("\nNo mistakes — perfect run! 🎉")
	}

	return b.String()
}

// formatBookmarks renders the bookmarks screen.
func formatBookmarks(questions []entities.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔖 <b>Bookmarked questions (%d)</b>\n", len(questions))
	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, q.Text)
	}

	return b.String()
}
