package service

import (
	"context"
	"errors"
	"strings"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
	"github.com/apexautomovers/quote-service/internal/validation"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

const (
	msgSubscribed        = "Successfully subscribed to newsletter"
	msgAlreadySubscribed = "Already subscribed"
)

// NewsletterService records newsletter sign-ups.
type NewsletterService struct {
	subscribers repository.NewsletterRepository
}

// NewNewsletterService builds the service.
func NewNewsletterService(subscribers repository.NewsletterRepository) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// Subscribe adds the address once. Repeating it succeeds with a different message.
func (s *NewsletterService) Subscribe(ctx context.Context, in validation.NewsletterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.subscribers.Subscribe(ctx, email); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return msgAlreadySubscribed, nil
		}
		return "", apperrors.NewStorageError(err)
	}
	return msgSubscribed, nil
}
