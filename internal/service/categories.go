package service

import (
	"context"

	"github.com/nhle/todocal/internal/model"
)

// CreateCategory validates in, rejects a duplicate name and stores the
// category.
func (s *Service) CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	cat, err := model.CreateCategory(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.categories.FindByName(ctx, cat.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &model.ValidationError{Field: "name", Reason: "Category already exists"}
	}

	created, err := s.categories.Create(ctx, cat)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", "id", created.ID, "name", created.Name)
	return created, nil
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.FindAll(ctx)
}

// GetCategory returns the category with id or a *model.NotFoundError.
func (s *Service) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, &model.NotFoundError{Entity: "category", ID: id}
	}
	return cat, nil
}

// DeleteCategory removes the category with id; it must exist. Todos keep
// their reference.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", "id", id)
	return nil
}
