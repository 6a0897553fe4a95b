// Package app implements the user directory as an in-memory store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/ecommerce-orders/internal/user-service/domain"
)

// Service keeps users in memory behind a RWMutex. Directory data is
// seed-or-register only, so a map is enough.
type Service struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewService() *Service {
	return &Service{users: make(map[string]domain.User)}
}

// Seed preloads a set of users, keeping any IDs already assigned.
func (s *Service) Seed(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		s.users[u.ID] = u
	}
}

// RegisterUser adds a user and returns it with its assigned ID.
func (s *Service) RegisterUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrInvalidUser)
	}
	if u.Email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrInvalidUser)
	}

	u.ID = uuid.NewString()

	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()

	slog.InfoContext(ctx, "user registered",
		slog.String("user_id", u.ID),
		slog.String("email", u.Email))
	return u, nil
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return u, nil
}

// ListUsers returns all users ordered by name. The result is never nil.
func (s *Service) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
