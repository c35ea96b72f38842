package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apexautomovers/quote-service/internal/domain"
	"github.com/apexautomovers/quote-service/internal/repository"
)

// Accounts holds users and their profiles. It implements both UserRepository and
// ProfileRepository so profile rows are created with their user.
type Accounts struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	profiles map[string]domain.Profile
}

// NewAccounts returns an empty account store.
func NewAccounts() *Accounts {
	return &Accounts{
		users:    make(map[string]domain.User),
		profiles: make(map[string]domain.Profile),
	}
}

var (
	_ repository.UserRepository    = (*Accounts)(nil)
	_ repository.ProfileRepository = (*Accounts)(nil)
)

func (a *Accounts) CreateWithProfile(_ context.Context, user *domain.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.users {
		if existing.Email == user.Email {
			return domain.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	a.users[user.ID] = *user
	a.profiles[user.ID] = domain.Profile{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (a *Accounts) GetByID(_ context.Context, id string) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	user, ok := a.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (a *Accounts) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, user := range a.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (a *Accounts) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	profile, ok := a.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (a *Accounts) UpdateName(_ context.Context, userID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	profile, ok := a.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	profile.Name = name
	profile.UpdatedAt = time.Now().UTC()
	a.profiles[userID] = profile
	return nil
}

func (a *Accounts) IsAdmin(_ context.Context, userID string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profiles[userID].Role == domain.RoleAdmin, nil
}

func (a *Accounts) SetRole(_ context.Context, email string, role domain.Role) (*domain.Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, profile := range a.profiles {
		if strings.EqualFold(profile.Email, email) {
			profile.Role = role
			profile.UpdatedAt = time.Now().UTC()
			a.profiles[id] = profile
			return &profile, nil
		}
	}
	return nil, nil
}
