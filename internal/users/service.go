package users

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidInput is returned when a create request is missing fields.
var ErrInvalidInput = errors.New("name and major are required")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name := strings.TrimSpace(in.Name)
	major := strings.TrimSpace(in.Major)
	if name == "" || major == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.Create(ctx, name, major)
}
