package domain

import "time"

// NewsletterSubscriber is an insert-only mailing list entry.
type NewsletterSubscriber struct {
	ID           string
	Email        string
	SubscribedAt time.Time
}
