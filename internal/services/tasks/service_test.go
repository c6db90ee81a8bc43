package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/akulikov/tasklist/internal/domain/model"
	pgrepo "github.com/akulikov/tasklist/internal/repo/postgres"
)

func TestCreateRequiresListOwnership(t *testing.T) {
	svc, _ := newServiceForTest()
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "list-1", "buy milk")
	if err != nil {
		t.Fatalf("create task in own list: %v", err)
	}
	if task.ListID != "list-1" || task.Title != "buy milk" {
		t.Fatalf("unexpected task: %+v", task)
	}

	if _, err := svc.Create(ctx, "user-2", "list-1", "sabotage"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("create in unowned list should be ErrListNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", "missing-list", "x"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("create in missing list should be ErrListNotFound, got %v", err)
	}
}

func TestUpdateTogglesCompletion(t *testing.T) {
	svc, _ := newServiceForTest()
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "list-1", "buy milk")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, "user-1", "list-1", task.ID, nil, &done)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("task should be completed")
	}
	if updated.Title != "buy milk" {
		t.Fatalf("title should be unchanged, got %q", updated.Title)
	}

	title := "buy oat milk"
	updated, err = svc.Update(ctx, "user-1", "list-1", task.ID, &title, nil)
	if err != nil {
		t.Fatalf("update task title: %v", err)
	}
	if updated.Title != "buy oat milk" || !updated.Completed {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
}

func TestUpdateMissingTask(t *testing.T) {
	svc, _ := newServiceForTest()

	done := true
	if _, err := svc.Update(context.Background(), "user-1", "list-1", "missing", nil, &done); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("missing task should be ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteScopedToList(t *testing.T) {
	svc, store := newServiceForTest()
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "list-1", "buy milk")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	removed, err := svc.Delete(ctx, "user-1", "list-1", task.ID)
	if err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if removed.ID != task.ID {
		t.Fatalf("unexpected removed task: %+v", removed)
	}
	if len(store.tasks) != 0 {
		t.Fatalf("task should be gone from the store")
	}
}

func newServiceForTest() (*Service, *stubTaskStore) {
	taskStore := &stubTaskStore{tasks: map[string]model.Task{}}
	listStore := stubListStore{
		"list-1": {ID: "list-1", Title: "groceries", UserID: "user-1"},
	}
	return NewService(taskStore, listStore), taskStore
}

type stubListStore map[string]model.List

func (s stubListStore) FindOwned(_ context.Context, listID, userID string) (model.List, error) {
	list, ok := s[listID]
	if !ok || list.UserID != userID {
		return model.List{}, pgrepo.ErrListNotFound
	}
	return list, nil
}

type stubTaskStore struct {
	tasks map[string]model.Task
}

func (s *stubTaskStore) ListByList(_ context.Context, listID string) ([]model.Task, error) {
	out := []model.Task{}
	for _, task := range s.tasks {
		if task.ListID == listID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *stubTaskStore) Create(_ context.Context, task model.Task) (model.Task, error) {
	s.tasks[task.ID] = task
	return task, nil
}

func (s *stubTaskStore) Update(_ context.Context, taskID, listID string, title *string, completed *bool) (model.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok || task.ListID != listID {
		return model.Task{}, pgrepo.ErrTaskNotFound
	}
	if title != nil {
		task.Title = *title
	}
	if completed != nil {
		task.Completed = *completed
	}
	s.tasks[taskID] = task
	return task, nil
}

func (s *stubTaskStore) Delete(_ context.Context, taskID, listID string) (model.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok || task.ListID != listID {
		return model.Task{}, pgrepo.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return task, nil
}
