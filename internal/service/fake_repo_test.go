package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/store"
)

type fakeTodoRepo struct {
	mu    sync.Mutex
	seq   int
	todos map[string]model.Todo
	order map[string]int
	err   error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{
		todos: make(map[string]model.Todo),
		order: make(map[string]int),
	}
}

func (r *fakeTodoRepo) Create(_ context.Context, f model.TodoFields) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	now := time.Now()
	t := model.Todo{
		ID:          uuid.New().String(),
		Title:       f.Title,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Completed:   f.Completed,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.seq++
	r.todos[t.ID] = t
	r.order[t.ID] = r.seq
	return &t, nil
}

func (r *fakeTodoRepo) FindByID(_ context.Context, id string) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	t, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTodoRepo) FindAll(_ context.Context, f store.TodoFilter) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var out []model.Todo
	for _, t := range r.todos {
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		if f.DueDate != nil && t.DueKey() != calendar.DayKey(*f.DueDate) {
			continue
		}
		if f.DueDateRange != nil && (t.DueDate == nil || !f.DueDateRange.Contains(*t.DueDate)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, t model.Todo) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	if _, ok := r.todos[t.ID]; !ok {
		return nil, &model.NotFoundError{Entity: "todo", ID: t.ID}
	}
	r.todos[t.ID] = t
	return &t, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}

	if _, ok := r.todos[id]; !ok {
		return &model.NotFoundError{Entity: "todo", ID: id}
	}
	delete(r.todos, id)
	return nil
}

type fakeCategoryRepo struct {
	mu   sync.Mutex
	cats map[string]model.Category
	err  error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: make(map[string]model.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c model.Category) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.cats[c.ID] = c
	return &c, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.cats[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Category, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.cats {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	delete(r.cats, id)
	return nil
}
