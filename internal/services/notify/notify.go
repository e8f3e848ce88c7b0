// Package notify keeps the short-lived user notifications.
package notify

import (
	"sync"
	"time"

	"smarttag/internal/dto"
	"smarttag/internal/logger"
)

const (
	NotificationEvent = "notification"
	DefaultTTL        = 5 * time.Second
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

func (k Kind) Title() string {
	switch k {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Information"
	}
}

func (k Kind) Icon() string {
	switch k {
	case Success:
		return "fa-check-circle"
	case Error:
		return "fa-exclamation-circle"
	case Warning:
		return "fa-exclamation-triangle"
	default:
		return "fa-info-circle"
	}
}

type Publisher interface {
	Publish(kind string, payload any)
}

type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	nextID int64
	items  []dto.Notification

	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time
}

func New(ttl time.Duration, publisher Publisher, logger *logger.Logger) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl:       ttl,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Notify records a notification that expires after the configured TTL.
func (n *Notifier) Notify(kind Kind, message string) dto.Notification {
	now := n.now()

	n.mu.Lock()
	n.nextID++
	item := dto.Notification{
		ID:        n.nextID,
		Kind:      string(kind),
		Title:     kind.Title(),
		Icon:      kind.Icon(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}
	n.items = append(prune(n.items, now), item)
	n.mu.Unlock()

	n.logger.Info("Notification [%s]: %s", kind, message)
	if n.publisher != nil {
		n.publisher.Publish(NotificationEvent, item)
	}
	return item
}

func (n *Notifier) Success(message string) { n.Notify(Success, message) }
func (n *Notifier) Error(message string)   { n.Notify(Error, message) }
func (n *Notifier) Warning(message string) { n.Notify(Warning, message) }
func (n *Notifier) Info(message string)    { n.Notify(Info, message) }

// Active returns the notifications that have not expired, oldest first.
func (n *Notifier) Active() []dto.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = prune(n.items, n.now())
	return append([]dto.Notification{}, n.items...)
}

// Dismiss removes the notification with the given id.
func (n *Notifier) Dismiss(id int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

func prune(items []dto.Notification, now time.Time) []dto.Notification {
	kept := items[:0]
	for _, item := range items {
		if now.Before(item.ExpiresAt) {
			kept = append(kept, item)
		}
	}
	return kept
}
