package dto

import (
	"time"

	"github.com/apexautomovers/quote-service/internal/domain"
)

// SignupResponse is returned by POST /auth/signup.
type SignupResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionUser is the account summary embedded in a session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse is returned by POST /auth/login.
type SessionResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        SessionUser `json:"user"`
}

// NewSessionResponse maps a domain session.
func NewSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt,
		User:        SessionUser{ID: s.User.ID, Email: s.User.Email},
	}
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewProfileResponse maps a domain profile.
func NewProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}
