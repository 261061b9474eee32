package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nhle/todocal/internal/model"
)

var fixedNow = time.Date(2026, time.February, 18, 9, 30, 0, 0, time.Local)

type testCLI struct {
	t   *testing.T
	dir string
}

func newTestCLI(t *testing.T) *testCLI {
	return &testCLI{t: t, dir: t.TempDir()}
}

// run executes one todocal invocation against the test database and
// returns stdout.
func (c *testCLI) run(args ...string) (string, error) {
	c.t.Helper()
	e := &env{now: func() time.Time { return fixedNow }}
	cmd := newRootCommand(e)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(c.dir, "config.yaml"),
		"--db", filepath.Join(c.dir, "todos.db"),
	}, args...))

	err := cmd.Execute()
	require.NoError(c.t, e.close())
	return out.String(), err
}

func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "todocal %s", strings.Join(args, " "))
	return out
}

func (c *testCLI) listJSON(args ...string) []todoRecord {
	c.t.Helper()
	out := c.mustRun(append([]string{"list", "-o", "json"}, args...)...)
	var records []todoRecord
	require.NoError(c.t, json.Unmarshal([]byte(out), &records))
	return records
}

func TestAddThenListJSON(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun("add", "Buy", "milk", "--due", "2026-02-10", "-p", "high")
	assert.Contains(t, out, `Added `)
	assert.Contains(t, out, `"Buy milk"`)

	records := c.listJSON()
	require.Len(t, records, 1)
	assert.Equal(t, "Buy milk", records[0].Title)
	assert.Equal(t, "2026-02-10", records[0].DueDate)
	assert.Equal(t, "high", records[0].Priority)
	assert.False(t, records[0].Completed)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run("add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Title is required", err.Error())
}

func TestListDateScopes(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("add", "today thing", "--due", "today")
	c.mustRun("add", "tenth", "--due", "2026-02-10")
	c.mustRun("add", "march", "--due", "2026-03-01")
	c.mustRun("add", "someday")

	assert.Len(t, c.listJSON(), 4)
	assert.Len(t, c.listJSON("--today"), 1)
	assert.Len(t, c.listJSON("--week"), 1)
	assert.Len(t, c.listJSON("--date", "2026-02-10"), 1)
	assert.Len(t, c.listJSON("--month", "2026-02"), 2)

	_, err := c.run("list", "--today", "--month", "2026-02")
	assert.Error(t, err)
}

func TestDoneByPrefixAndStatusFilter(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("add", "water plants")
	c.mustRun("add", "call mom")

	var id string
	for _, r := range c.listJSON() {
		if r.Title == "water plants" {
			id = r.ID
		}
	}
	require.NotEmpty(t, id)

	out := c.mustRun("done", id[:8])
	assert.Contains(t, out, "Completed")

	completed := c.listJSON("--status", "completed")
	require.Len(t, completed, 1)
	assert.Equal(t, id, completed[0].ID)
	assert.Len(t, c.listJSON("--status", "active"), 1)

	out = c.mustRun("done", id)
	assert.Contains(t, out, "Reopened")

	out = c.mustRun("list", "--status", "completed")
	assert.Contains(t, out, "No completed todos yet")
}

func TestEditFields(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("category", "add", "Work")
	c.mustRun("add", "report", "--due", "2026-02-10", "-c", "Work", "-d", "quarterly")
	id := c.listJSON()[0].ID

	c.mustRun("edit", id, "--title", "final report", "--priority", "low")
	r := c.listJSON()[0]
	assert.Equal(t, "final report", r.Title)
	assert.Equal(t, "low", r.Priority)
	assert.Equal(t, "2026-02-10", r.DueDate)
	assert.Equal(t, "Work", r.Category)
	assert.Equal(t, "quarterly", r.Description)

	c.mustRun("edit", id, "--clear-due", "--clear-category")
	r = c.listJSON()[0]
	assert.Empty(t, r.DueDate)
	assert.Empty(t, r.CategoryID)

	_, err := c.run("edit", id, "--due", "today", "--clear-due")
	assert.Error(t, err)

	_, err = c.run("edit", id, "--title", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRm(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("add", "temp")
	id := c.listJSON()[0].ID

	out := c.mustRun("rm", id)
	assert.Contains(t, out, "Deleted")
	assert.Empty(t, c.listJSON())

	_, err := c.run("rm", id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCategoryCommands(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun("category", "add", "Home", "--color", "#22c55e")
	assert.Contains(t, out, "#22c55e")

	_, err := c.run("category", "add", "Home")
	require.Error(t, err)
	assert.Equal(t, "Category already exists", err.Error())

	_, err = c.run("category", "add", "Bad", "--color", "green")
	assert.ErrorIs(t, err, model.ErrValidation)

	c.mustRun("add", "sweep", "-c", "Home")
	out = c.mustRun("list", "-c", "Home", "-o", "yaml")
	var records []todoRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Home", records[0].Category)

	out = c.mustRun("category", "list")
	assert.Contains(t, out, "Home")

	c.mustRun("category", "rm", "Home")
	out = c.mustRun("category", "list")
	assert.Contains(t, out, "No categories yet.")

	// The todo keeps its dangling reference but renders without a name.
	records = c.listJSON()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].CategoryID)
	assert.Empty(t, records[0].Category)

	_, err = c.run("category", "rm", "Home")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCalendarCommand(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("add", "dentist", "--due", "2026-02-10")
	c.mustRun("add", "march thing", "--due", "2026-03-02")

	out := c.mustRun("calendar", "--month", "2026-02")
	assert.Contains(t, out, "2026년 2월")
	assert.Contains(t, out, "2월 10일 (화)")
	assert.Contains(t, out, "dentist")
	assert.NotContains(t, out, "march thing")

	out = c.mustRun("calendar", "--month", "2026-04")
	assert.Contains(t, out, "No todos this month.")
}

func TestTableOutput(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("add", "overdue thing", "--due", "2026-02-01")

	out := c.mustRun("list")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "overdue thing")
	assert.Contains(t, out, "2026-02-01 !")

	_, err := c.run("list", "-o", "xml")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	c := newTestCLI(t)
	out := c.mustRun("config", "init")
	assert.Contains(t, out, "config.yaml")

	_, err := os.Stat(filepath.Join(c.dir, "config.yaml"))
	require.NoError(t, err)

	out = c.mustRun("config", "show")
	assert.Contains(t, out, "refresh_interval_sec: 60")
}

func TestHelpListsCommands(t *testing.T) {
	c := newTestCLI(t)
	out := c.mustRun("--help")
	for _, name := range []string{"add", "list", "done", "edit", "rm", "calendar", "category"} {
		assert.Contains(t, out, name)
	}
}

func TestParseHelpers(t *testing.T) {
	p, err := parsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, p)
	p, err = parsePriority("1")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityLow, p)
	_, err = parsePriority("9")
	assert.Error(t, err)

	d, err := parseDue("tomorrow", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 19, d.Day())
	_, err = parseDue("19/02/2026", fixedNow)
	assert.Error(t, err)

	m, err := parseMonth("2026-12")
	require.NoError(t, err)
	assert.Equal(t, time.December, m.Month())
	assert.Equal(t, 1, m.Day())
}
