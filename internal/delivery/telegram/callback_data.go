package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionMenu      = "menu"
	actionSelection = "sel"
	actionQuiz      = "qz"
	actionReminder  = "rem"
)

// Menu sub-actions.
const (
	menuTopic        = "topic"
	menuDaily        = "daily"
	menuBookmarks    = "bookmarks"
	menuBookmarkQuiz = "bmquiz"
	menuReview       = "review"
	menuHome         = "home"
)

// Selection sub-actions. Selection callbacks carry indices into the
// sorted catalog accessors rather than names: callback data is capped at
// 64 bytes and topic names can be long.
const (
	selYear   = "y"
	selModule = "m"
	selTopic  = "t"
	selCount  = "c"
	selStart  = "s"
)

// Quiz sub-actions.
const (
	quizAnswer   = "a"
	quizNext     = "n"
	quizBookmark = "b"
	quizStop     = "stop"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildMenuCallback(item string) string {
	return callbackData{Action: actionMenu, Params: []string{item}}.encode()
}

// buildYearCallback builds callback data for picking a year.
func buildYearCallback(year int) string {
	return callbackData{
		Action: actionSelection,
		Params: []string{selYear, strconv.Itoa(year)},
	}.encode()
}

// buildModuleCallback builds callback data for picking a module of a year.
func buildModuleCallback(year, module int) string {
	return callbackData{
		Action: actionSelection,
		Params: []string{selModule, strconv.Itoa(year), strconv.Itoa(module)},
	}.encode()
}

// buildTopicCallback builds callback data for picking a topic.
func buildTopicCallback(year, module, topic int) string {
	return callbackData{
		Action: actionSelection,
		Params: []string{selTopic, strconv.Itoa(year), strconv.Itoa(module), strconv.Itoa(topic)},
	}.encode()
}

// buildCountCallback builds callback data for picking the question count.
// A count of 0 means the whole bank.
func buildCountCallback(year, module, topic, count int) string {
	return callbackData{
		Action: actionSelection,
		Params: []string{selCount, strconv.Itoa(year), strconv.Itoa(module), strconv.Itoa(topic), strconv.Itoa(count)},
	}.encode()
}

// buildStartCallback builds callback data for starting the topic quiz
// with the accumulated selection and timer choice.
func buildStartCallback(year, module, topic, count, timer int) string {
	return callbackData{
		Action: actionSelection,
		Params: []string{
			selStart,
			strconv.Itoa(year),
			strconv.Itoa(module),
			strconv.Itoa(topic),
			strconv.Itoa(count),
			strconv.Itoa(timer),
		},
	}.encode()
}

// buildAnswerCallback builds callback data for answering with the choice
// at the given index.
func buildAnswerCallback(choice int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(choice)},
	}.encode()
}

func buildNextCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext}}.encode()
}

func buildBookmarkCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizBookmark}}.encode()
}

func buildStopCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStop}}.encode()
}

// buildReminderToggleCallback builds callback data for toggling the
// daily challenge reminder.
func buildReminderToggleCallback() string {
	return callbackData{Action: actionReminder, Params: []string{"toggle"}}.encode()
}
