package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is an in-memory task store. Each user's tasks are kept in creation order.
type Repository struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	byUser map[string][]string
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		tasks:  make(map[string]*Task),
		byUser: make(map[string][]string),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns the user's tasks in creation order
func (r *Repository) List(_ context.Context, userID string) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	out := make([]Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.tasks[id])
	}
	return out, nil
}

// Create stores a new task for userID
func (r *Repository) Create(_ context.Context, userID string, req CreateRequest) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t := &Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks[t.ID] = t
	r.byUser[userID] = append(r.byUser[userID], t.ID)

	copied := *t
	return &copied, nil
}

// Get returns a task owned by userID
func (r *Repository) Get(_ context.Context, userID, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	copied := *t
	return &copied, nil
}

// Update applies the set fields of u and refreshes UpdatedAt
func (r *Repository) Update(_ context.Context, userID, id string, u Update) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		desc := *u.Description
		t.Description = &desc
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	t.UpdatedAt = r.now()

	copied := *t
	return &copied, nil
}

// Toggle flips Completed
func (r *Repository) Toggle(_ context.Context, userID, id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	t.UpdatedAt = r.now()

	copied := *t
	return &copied, nil
}

// Delete removes a task owned by userID
func (r *Repository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.owned(userID, id); err != nil {
		return err
	}
	delete(r.tasks, id)

	ids := r.byUser[userID]
	for i, v := range ids {
		if v == id {
			r.byUser[userID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// owned must be called with the lock held
func (r *Repository) owned(userID, id string) (*Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return t, nil
}
