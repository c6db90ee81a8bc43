package lists

import (
	"context"
	"errors"
	"testing"

	"github.com/akulikov/tasklist/internal/domain/model"
	pgrepo "github.com/akulikov/tasklist/internal/repo/postgres"
)

func TestCreateAndListScopedToUser(t *testing.T) {
	svc := NewService(newStubStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "  groceries  ")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if created.Title != "groceries" {
		t.Fatalf("title should be trimmed, got %q", created.Title)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := svc.Create(ctx, "user-2", "work"); err != nil {
		t.Fatalf("create list for other user: %v", err)
	}

	mine, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list lists: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("expected only own lists, got %+v", mine)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc := NewService(newStubStore())

	if _, err := svc.Create(context.Background(), "user-1", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title should be ErrInvalidInput, got %v", err)
	}
}

func TestUpdateUnownedListIsNotFound(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if _, err := svc.Update(ctx, "user-2", created.ID, "stolen"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update by non-owner should be ErrNotFound, got %v", err)
	}

	updated, err := svc.Update(ctx, "user-1", created.ID, "food")
	if err != nil {
		t.Fatalf("update by owner: %v", err)
	}
	if updated.Title != "food" {
		t.Fatalf("unexpected title after update: %q", updated.Title)
	}
}

func TestDeleteReturnsRemovedList(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	removed, err := svc.Delete(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if removed.ID != created.ID {
		t.Fatalf("unexpected removed list: %+v", removed)
	}

	if _, err := svc.Get(ctx, "user-1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted list should be gone, got %v", err)
	}
}

type stubStore struct {
	lists map[string]model.List
}

func newStubStore() *stubStore {
	return &stubStore{lists: map[string]model.List{}}
}

func (s *stubStore) ListByUser(_ context.Context, userID string) ([]model.List, error) {
	out := []model.List{}
	for _, list := range s.lists {
		if list.UserID == userID {
			out = append(out, list)
		}
	}
	return out, nil
}

func (s *stubStore) Create(_ context.Context, list model.List) (model.List, error) {
	s.lists[list.ID] = list
	return list, nil
}

func (s *stubStore) FindOwned(_ context.Context, listID, userID string) (model.List, error) {
	list, ok := s.lists[listID]
	if !ok || list.UserID != userID {
		return model.List{}, pgrepo.ErrListNotFound
	}
	return list, nil
}

func (s *stubStore) UpdateOwned(_ context.Context, listID, userID, title string) (model.List, error) {
	list, err := s.FindOwned(context.Background(), listID, userID)
	if err != nil {
		return model.List{}, err
	}
	list.Title = title
	s.lists[listID] = list
	return list, nil
}

func (s *stubStore) DeleteOwned(_ context.Context, listID, userID string) (model.List, error) {
	list, err := s.FindOwned(context.Background(), listID, userID)
	if err != nil {
		return model.List{}, err
	}
	delete(s.lists, listID)
	return list, nil
}
