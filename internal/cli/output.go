package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nhle/todocal/internal/model"
)

// Output formats accepted by -o.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const shortIDLen = 8

// todoRecord is the external shape of a todo in json and yaml output.
// Due dates use the YYYY-MM-DD day key.
type todoRecord struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CategoryID  string `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
}

type categoryRecord struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Color     string `json:"color" yaml:"color"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

func toTodoRecord(t model.Todo, cats []model.Category) todoRecord {
	r := todoRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority.String(),
		DueDate:     t.DueKey(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.CategoryID != nil {
		r.CategoryID = *t.CategoryID
		if c, ok := model.FindCategory(cats, t.CategoryID); ok {
			r.Category = c.Name
		}
	}
	return r
}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, use table, json or yaml", format)
	}
}

// encode writes v as json or yaml.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return checkFormat(format)
	}
}

// writeTodos prints todos in the requested format. empty is printed
// instead of an empty table.
func writeTodos(w io.Writer, format string, todos []model.Todo, cats []model.Category, now time.Time, empty string) error {
	if format != formatTable {
		records := make([]todoRecord, len(todos))
		for i, t := range todos {
			records[i] = toTodoRecord(t, cats)
		}
		return encode(w, format, records)
	}

	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	_, err := fmt.Fprintln(w, formatTodoTable(todos, cats, now))
	return err
}

func formatTodoTable(todos []model.Todo, cats []model.Category, now time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "", "PRI", "DUE", "CATEGORY", "TITLE")

	for _, td := range todos {
		done := " "
		if td.Completed {
			done = "✓"
		}
		due := "-"
		if td.DueDate != nil {
			due = td.DueKey()
			if td.IsOverdue(now) {
				due += " !"
			}
		}
		category := "-"
		if c, ok := model.FindCategory(cats, td.CategoryID); ok {
			category = c.Name
		}
		t.Row(shortID(td.ID), done, td.Priority.String(), due, category, td.Title)
	}
	return t.String()
}

func writeCategories(w io.Writer, format string, cats []model.Category) error {
	if format != formatTable {
		records := make([]categoryRecord, len(cats))
		for i, c := range cats {
			records[i] = categoryRecord{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt.Format(time.RFC3339)}
		}
		return encode(w, format, records)
	}

	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, "No categories yet.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "COLOR")
	for _, c := range cats {
		t.Row(shortID(c.ID), c.Name, c.Color)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// quote wraps a title for one-line messages.
func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\n", " ") + "\""
}
