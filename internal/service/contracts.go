package service

import (
	"context"

	"github.com/oubmed/medquiz-bot/internal/domain/entities"
)

// CatalogRepository provides read access to the question catalog and the
// master list built from it.
type CatalogRepository interface {
	Years() []string
	Modules(year string) []string
	Topics(year, module string) []string
	Resolve(year, module, topic string) (string, bool)
	LoadBank(ctx context.Context, ref entities.BankRef) []entities.Question
	Master() []entities.Question
}

// BookmarkRepository manages the persistent bookmark set.
type BookmarkRepository interface {
	Toggle(key string) bool
	IsBookmarked(key string) bool
	Keys() map[string]struct{}
	Count() int
}

// SubscriberRepository manages daily-reminder subscriptions.
type SubscriberRepository interface {
	Toggle(chatID int64) bool
	IsSubscribed(chatID int64) bool
	All() []int64
}

// ReminderNotifier sends the daily challenge reminder to a chat.
type ReminderNotifier interface {
	SendDailyReminder(chatID int64) error
}
