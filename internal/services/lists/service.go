package lists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/akulikov/tasklist/internal/domain/model"
	pgrepo "github.com/akulikov/tasklist/internal/repo/postgres"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("list not found")
)

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]model.List, error)
	Create(ctx context.Context, list model.List) (model.List, error)
	FindOwned(ctx context.Context, listID, userID string) (model.List, error)
	UpdateOwned(ctx context.Context, listID, userID, title string) (model.List, error)
	DeleteOwned(ctx context.Context, listID, userID string) (model.List, error)
}

// Service owns list CRUD. Every operation is scoped to the authenticated
// user; a list belonging to someone else behaves exactly like a missing one.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, userID string) ([]model.List, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	lists, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list lists for user: %w", err)
	}
	return lists, nil
}

func (s *Service) Create(ctx context.Context, userID, title string) (model.List, error) {
	title = strings.TrimSpace(title)
	if strings.TrimSpace(userID) == "" || title == "" {
		return model.List{}, ErrInvalidInput
	}

	list, err := s.store.Create(ctx, model.List{
		ID:     uuid.NewString(),
		Title:  title,
		UserID: userID,
	})
	if err != nil {
		return model.List{}, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, userID, listID string) (model.List, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listID) == "" {
		return model.List{}, ErrInvalidInput
	}

	list, err := s.store.FindOwned(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListNotFound) {
			return model.List{}, ErrNotFound
		}
		return model.List{}, fmt.Errorf("find list: %w", err)
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, userID, listID, title string) (model.List, error) {
	title = strings.TrimSpace(title)
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listID) == "" || title == "" {
		return model.List{}, ErrInvalidInput
	}

	list, err := s.store.UpdateOwned(ctx, listID, userID, title)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListNotFound) {
			return model.List{}, ErrNotFound
		}
		return model.List{}, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}

// Delete removes the list and all tasks that belonged to it.
func (s *Service) Delete(ctx context.Context, userID, listID string) (model.List, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listID) == "" {
		return model.List{}, ErrInvalidInput
	}

	list, err := s.store.DeleteOwned(ctx, listID, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListNotFound) {
			return model.List{}, ErrNotFound
		}
		return model.List{}, fmt.Errorf("delete list: %w", err)
	}
	return list, nil
}
