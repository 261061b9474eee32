package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nhle/todocal/internal/model"
)

// CategoryStore is the CategoryRepository view of a SQLiteStore.
type CategoryStore struct {
	*SQLiteStore
}

var categoryColumns = []string{"id", "name", "color", "created_at"}

// Create inserts cat. Missing id, color or creation time are filled in.
func (s *CategoryStore) Create(ctx context.Context, cat model.Category) (*model.Category, error) {
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	if cat.Color == "" {
		cat.Color = model.DefaultCategoryColor
	}
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}

	query, args, err := sq.Insert("categories").
		Columns(categoryColumns...).
		Values(cat.ID, cat.Name, cat.Color, cat.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, s.fail("creating category", err)
	}

	s.notify()
	return &cat, nil
}

// FindByID returns the category with id, or nil when none exists.
func (s *CategoryStore) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return s.findOne(ctx, sq.Eq{"id": id}, fmt.Sprintf("getting category %s", id))
}

// FindByName returns the category named name, or nil when none exists.
func (s *CategoryStore) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return s.findOne(ctx, sq.Eq{"name": name}, fmt.Sprintf("getting category %q", name))
}

func (s *CategoryStore) findOne(ctx context.Context, where sq.Eq, op string) (*model.Category, error) {
	query, args, err := sq.Select(categoryColumns...).From("categories").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category lookup: %w", err)
	}

	var cat model.Category
	if err := s.db.GetContext(ctx, &cat, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, s.fail(op, err)
	}
	cat.CreatedAt = cat.CreatedAt.Local()
	return &cat, nil
}

// FindAll returns every category ordered by name.
func (s *CategoryStore) FindAll(ctx context.Context) ([]model.Category, error) {
	query, args, err := sq.Select(categoryColumns...).From("categories").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category query: %w", err)
	}

	var cats []model.Category
	if err := s.db.SelectContext(ctx, &cats, query, args...); err != nil {
		return nil, s.fail("querying categories", err)
	}
	for i := range cats {
		cats[i].CreatedAt = cats[i].CreatedAt.Local()
	}
	return cats, nil
}

// Delete removes a category. Todos that referenced it keep the dangling id.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return s.fail(fmt.Sprintf("deleting category %s", id), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return s.fail(fmt.Sprintf("deleting category %s", id), err)
	}
	if rows == 0 {
		return &model.NotFoundError{Entity: "category", ID: id}
	}
	s.notify()
	return nil
}
