package users

import (
	"context"
	"errors"
	"strings"
)

// Service contains business logic for users.
type Service struct {
	repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// UpsertFromLogin records the user identity after a successful login.
func (s *Service) UpsertFromLogin(ctx context.Context, id, email, fullName string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("user id is required")
	}
	return s.repo.Upsert(ctx, User{ID: id, Email: email, FullName: fullName})
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("userID is required")
	}
	return s.repo.GetByID(ctx, userID)
}
