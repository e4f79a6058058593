package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService sends a daily challenge reminder to subscribed chats
// once a day at the configured UTC hour.
type ReminderService struct {
	subscribers SubscriberRepository
	notifier    ReminderNotifier
	hour        int
	logger      *zap.Logger
}

// NewReminderService creates a new reminder service.
func NewReminderService(subscribers SubscriberRepository, hour int, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		subscribers: subscribers,
		hour:        hour,
		logger:      logger,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Toggle flips a chat's reminder subscription and reports the new state.
func (s *ReminderService) Toggle(chatID int64) bool {
	return s.subscribers.Toggle(chatID)
}

// IsSubscribed reports whether a chat receives daily reminders.
func (s *ReminderService) IsSubscribed(chatID int64) bool {
	return s.subscribers.IsSubscribed(chatID)
}

// Start begins the reminder scheduling loop and blocks until ctx is done.
func (s *ReminderService) Start(ctx context.Context) {
	s.logger.Info("reminder service started", zap.Int("hour", s.hour))

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(fmt.Sprintf("0 %d * * *", s.hour), func() {
		s.logger.Info("cron triggered: sending daily challenge reminders")
		s.sendReminders()
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("reminder service stopped")
}

// sendReminders notifies every subscriber. Failures are logged per chat
// and do not stop the batch.
func (s *ReminderService) sendReminders() {
	if s.notifier == nil {
		s.logger.Warn("reminder notifier not set")
		return
	}

	for _, chatID := range s.subscribers.All() {
		if err := s.notifier.SendDailyReminder(chatID); err != nil {
			s.logger.Error("failed to send daily reminder",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
}
