package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
	"github.com/apexautomovers/quote-service/internal/validation"
	apperrors "github.com/apexautomovers/quote-service/pkg/util/errorutil"
)

// SignupResult is the public view of a freshly created account.
type SignupResult struct {
	ID    string
	Email string
	Name  string
}

// AccountService coordinates registration, login and profile reads.
type AccountService struct {
	provider auth.IdentityProvider
	gate     *auth.Gate
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// AccountDependencies encapsulates requirements for the account service.
type AccountDependencies struct {
	Provider    auth.IdentityProvider
	Gate        *auth.Gate
	ProfileRepo repository.ProfileRepository
	Logger      *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		provider: deps.Provider,
		gate:     deps.Gate,
		profiles: deps.ProfileRepo,
		logger:   deps.Logger,
	}
}

// Signup creates an account through the identity provider and names its profile.
func (s *AccountService) Signup(ctx context.Context, in validation.SignupInput) (*SignupResult, error) {
	user, err := s.provider.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, apperrors.NewProviderError(err)
	}

	if err := s.profiles.UpdateName(ctx, user.ID, in.Name); err != nil {
		s.logger.Warn("profile name not saved", zap.String("user_id", user.ID), zap.Error(err))
	}

	return &SignupResult{ID: user.ID, Email: in.Email, Name: in.Name}, nil
}

// Login exchanges credentials for an access token.
func (s *AccountService) Login(ctx context.Context, in validation.LoginInput) (*domain.Session, error) {
	session, err := s.provider.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, apperrors.NewUnauthorized("Invalid login credentials")
		}
		return nil, apperrors.NewProviderError(err)
	}
	return session, nil
}

// GetProfile returns the caller's profile.
func (s *AccountService) GetProfile(ctx context.Context, token string) (*domain.Profile, error) {
	user, err := s.gate.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("Profile not found")
	}
	return profile, nil
}
