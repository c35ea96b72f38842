package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
)

// Messages reported by the identity provider on rejected sign-ups.
var (
	ErrEmailTaken   = errors.New("A user with this email address has already been registered")
	ErrInvalidEmail = errors.New("Unable to validate email address: invalid format")
	ErrUnknownUser  = errors.New("user not found")
)

// IdentityProvider is the external identity service the application delegates to.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, token string) (*domain.User, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
}

// LocalProviderConfig tunes the password policy and hashing cost.
type LocalProviderConfig struct {
	BcryptCost        int
	MinPasswordLength int
}

// LocalProvider keeps accounts in Postgres and issues HS256 access tokens.
type LocalProvider struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tokens   *TokenManager
	validate *validator.Validate
	cfg      LocalProviderConfig
}

// NewLocalProvider constructs the provider.
func NewLocalProvider(users repository.UserRepository, profiles repository.ProfileRepository, tokens *TokenManager, cfg LocalProviderConfig) *LocalProvider {
	return &LocalProvider{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// CreateUser registers an account and its default profile.
func (p *LocalProvider) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := p.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := CheckPasswordPolicy(password, p.cfg.MinPasswordLength); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password, p.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := p.users.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// GetUser introspects an access token and returns its account.
func (p *LocalProvider) GetUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := p.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := p.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// IsAdmin reports whether the account holds the admin role.
func (p *LocalProvider) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return p.profiles.IsAdmin(ctx, userID)
}

// SignIn checks credentials and issues an access token.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := p.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || ComparePassword(user.PasswordHash, password) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := p.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        *user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
