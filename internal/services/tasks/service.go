package tasks

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
	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")
)

type Store interface {
	ListByList(ctx context.Context, listID string) ([]model.Task, error)
	Create(ctx context.Context, task model.Task) (model.Task, error)
	Update(ctx context.Context, taskID, listID string, title *string, completed *bool) (model.Task, error)
	Delete(ctx context.Context, taskID, listID string) (model.Task, error)
}

type ListStore interface {
	FindOwned(ctx context.Context, listID, userID string) (model.List, error)
}

// Service owns task CRUD. The parent list's ownership is checked before any
// task operation, so a task can never be reached through someone else's list.
type Service struct {
	store Store
	lists ListStore
}

func NewService(store Store, lists ListStore) *Service {
	return &Service{store: store, lists: lists}
}

func (s *Service) List(ctx context.Context, userID, listID string) ([]model.Task, error) {
	if err := s.checkListOwnership(ctx, userID, listID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) Create(ctx context.Context, userID, listID, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrInvalidInput
	}
	if err := s.checkListOwnership(ctx, userID, listID); err != nil {
		return model.Task{}, err
	}

	task, err := s.store.Create(ctx, model.Task{
		ID:     uuid.NewString(),
		Title:  title,
		ListID: listID,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *Service) Update(ctx context.Context, userID, listID, taskID string, title *string, completed *bool) (model.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return model.Task{}, ErrInvalidInput
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return model.Task{}, ErrInvalidInput
	}
	if err := s.checkListOwnership(ctx, userID, listID); err != nil {
		return model.Task{}, err
	}

	task, err := s.store.Update(ctx, taskID, listID, title, completed)
	if err != nil {
		if errors.Is(err, pgrepo.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, listID, taskID string) (model.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return model.Task{}, ErrInvalidInput
	}
	if err := s.checkListOwnership(ctx, userID, listID); err != nil {
		return model.Task{}, err
	}

	task, err := s.store.Delete(ctx, taskID, listID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("delete task: %w", err)
	}
	return task, nil
}

func (s *Service) checkListOwnership(ctx context.Context, userID, listID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listID) == "" {
		return ErrInvalidInput
	}

	if _, err := s.lists.FindOwned(ctx, listID, userID); err != nil {
		if errors.Is(err, pgrepo.ErrListNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("check list ownership: %w", err)
	}
	return nil
}
