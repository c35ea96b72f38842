package domain

import "time"

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        User
}
