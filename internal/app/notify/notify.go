// Package notify queues user-facing notifications under a celebration
// policy: a hard daily cap and quiet hours. Engines push into it through the
// domain.NotificationSink contract; the presentation layer polls Pending.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// Service manages the notification queue.
type Service struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
	now    func() time.Time
}

// NewService creates a notification service with the default policy.
func NewService(db *sqlite.DB) *Service {
	return NewServiceWithPolicy(db, domain.DefaultNotificationPolicy())
}

// NewServiceWithPolicy creates a notification service with a custom policy.
func NewServiceWithPolicy(db *sqlite.DB, policy domain.NotificationPolicy) *Service {
	return &Service{db: db, policy: policy, now: time.Now}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Notify satisfies domain.NotificationSink. Policy suppressions and storage
// failures are logged, never propagated: a missed celebration must not fail
// the state change that earned it.
func (s *Service) Notify(n domain.Notification) {
	if _, err := s.Create(n); err != nil {
		log.Printf("notification dropped (type=%s): %v", n.Type, err)
	}
}

// Create queues a notification if policy allows it.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (s *Service) Create(n domain.Notification) (int64, error) {
	now := s.now()

	todayCount, err := s.db.NotificationCountSince(domain.DayOf(now))
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= s.policy.MaxPerDay {
		return 0, nil // Suppressed — daily limit reached
	}

	if s.isQuietHour(now) {
		return 0, nil // Suppressed — quiet hours
	}

	n.CreatedAt = now
	n.Shown = false

	id, err := s.db.InsertNotification(n)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// Pending returns unshown notifications.
func (s *Service) Pending(limit int) ([]domain.Notification, error) {
	return s.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNotificationShown(id)
}

// TodayCount returns how many notifications were queued today.
func (s *Service) TodayCount() (int, error) {
	return s.db.NotificationCountSince(domain.DayOf(s.now()))
}

// Policy returns the current notification policy.
func (s *Service) Policy() domain.NotificationPolicy {
	return s.policy
}

// isQuietHour reports whether t falls within the quiet window.
func (s *Service) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(s.policy.QuietStart)
	endHour, endMin := parseHHMM(s.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
