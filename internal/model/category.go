package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6366f1"

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Category is a named, colored label optionally attached to todos.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CategoryInput carries the values for CreateCategory. An empty Color
// selects DefaultCategoryColor.
type CategoryInput struct {
	Name  string
	Color string
}

// IsHexColor reports whether s is a 3- or 6-digit hex color like "#abc".
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// CreateCategory validates input and builds a new category. Name uniqueness
// is checked by the caller against the repository.
func CreateCategory(in CategoryInput) (Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Category{}, invalid("name", "Category name is required")
	}

	color := DefaultCategoryColor
	if in.Color != "" {
		if !IsHexColor(in.Color) {
			return Category{}, invalid("color", "Invalid color format")
		}
		color = in.Color
	}

	return Category{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}, nil
}

// FindCategory returns the category with the given id from cats.
func FindCategory(cats []Category, id *string) (Category, bool) {
	if id == nil {
		return Category{}, false
	}
	for _, c := range cats {
		if c.ID == *id {
			return c, true
		}
	}
	return Category{}, false
}
