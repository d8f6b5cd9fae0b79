package todo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "todos.yaml"))
	require.NoError(t, err)
	return s
}

func day(s string) time.Time {
	d, err := ParseDueDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOpen(t *testing.T) {
	t.Run("Should start empty when the file is missing", func(t *testing.T) {
		s := openTemp(t)
		assert.Empty(t, s.Categories())
		assert.Empty(t, s.Todos())
	})

	t.Run("Should fail on a corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todos.yaml")
		require.NoError(t, os.WriteFile(path, []byte("todos: [oops"), 0o644))
		_, err := Open(path)
		assert.Error(t, err)
	})

	t.Run("Should reload what was saved", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todos.yaml")
		s, err := Open(path)
		require.NoError(t, err)
		c, err := s.AddCategory("School")
		require.NoError(t, err)
		td, err := s.CreateTodo(NewTodo{Name: "Essay", CategoryID: c.ID, DueDate: day("2026-11-01")})
		require.NoError(t, err)

		reopened, err := Open(path)
		require.NoError(t, err)
		require.Len(t, reopened.Todos(), 1)
		got := reopened.Todos()[0]
		assert.Equal(t, td.ID, got.ID)
		assert.Equal(t, "Essay", got.Name)
		assert.Equal(t, StatusPending, got.Status)
		assert.True(t, td.DueDate.Equal(got.DueDate))
		assert.Equal(t, []string{"School"}, names(reopened.Categories()))
	})
}

func names(cs []Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestCategories(t *testing.T) {
	t.Run("Should trim, sort, and reject duplicates", func(t *testing.T) {
		s := openTemp(t)
		_, err := s.AddCategory("  work ")
		require.NoError(t, err)
		_, err = s.AddCategory("Home")
		require.NoError(t, err)

		_, err = s.AddCategory("WORK")
		assert.ErrorIs(t, err, ErrDuplicateCategory)

		assert.Equal(t, []string{"Home", "work"}, names(s.Categories()))
	})

	t.Run("Should reject blank names", func(t *testing.T) {
		s := openTemp(t)
		_, err := s.AddCategory("   ")
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("Should refuse to delete a category with todos", func(t *testing.T) {
		s := openTemp(t)
		c, err := s.AddCategory("Chores")
		require.NoError(t, err)
		td, err := s.CreateTodo(NewTodo{Name: "Dishes", CategoryID: c.ID, DueDate: day("2026-10-20")})
		require.NoError(t, err)

		assert.True(t, s.HasTodos(c.ID))
		assert.ErrorIs(t, s.DeleteCategory(c.ID), ErrCategoryInUse)

		require.NoError(t, s.DeleteTodo(td.ID))
		require.NoError(t, s.DeleteCategory(c.ID))
		assert.Empty(t, s.Categories())

		_, err = s.Category(c.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should report unknown ids", func(t *testing.T) {
		s := openTemp(t)
		assert.ErrorIs(t, s.DeleteCategory("missing"), ErrNotFound)
	})
}

func TestTodos(t *testing.T) {
	t.Run("Should validate input", func(t *testing.T) {
		s := openTemp(t)
		c, err := s.AddCategory("Work")
		require.NoError(t, err)

		cases := []struct {
			in    NewTodo
			field string
		}{
			{NewTodo{Name: " ", CategoryID: c.ID, DueDate: day("2026-10-20")}, "name"},
			{NewTodo{Name: "x", CategoryID: c.ID}, "dueDate"},
			{NewTodo{Name: "x", CategoryID: "nope", DueDate: day("2026-10-20")}, "categoryId"},
		}
		for _, tc := range cases {
			_, err := s.CreateTodo(tc.in)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		}
		assert.Empty(t, s.Todos())
	})

	t.Run("Should order by due date and toggle status", func(t *testing.T) {
		s := openTemp(t)
		c, err := s.AddCategory("Work")
		require.NoError(t, err)
		late, err := s.CreateTodo(NewTodo{Name: "Report", CategoryID: c.ID, DueDate: day("2026-12-01")})
		require.NoError(t, err)
		_, err = s.CreateTodo(NewTodo{Name: "Email", CategoryID: c.ID, DueDate: day("2026-10-18")})
		require.NoError(t, err)

		todos := s.Todos()
		require.Len(t, todos, 2)
		assert.Equal(t, "Email", todos[0].Name)
		assert.Equal(t, "Report", todos[1].Name)

		toggled, err := s.ToggleTodo(late.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Done())

		toggled, err = s.ToggleTodo(late.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, toggled.Status)

		_, err = s.ToggleTodo("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeleteTodo("missing"), ErrNotFound)
	})
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, 17, d.Day())

	_, err = ParseDueDate("17/10/2026")
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 0, 0, 0, time.Local)
	assert.True(t, Todo{Status: StatusPending, DueDate: day("2026-10-16")}.Overdue(now))
	assert.False(t, Todo{Status: StatusPending, DueDate: day("2026-10-17")}.Overdue(now))
	assert.False(t, Todo{Status: StatusDone, DueDate: day("2026-10-01")}.Overdue(now))
}

func TestSharedFile(t *testing.T) {
	t.Run("Should see writes from another store on the same file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todos.yaml")
		ui, err := Open(path)
		require.NoError(t, err)
		api, err := Open(path)
		require.NoError(t, err)

		_, err = api.AddCategory("Shared")
		require.NoError(t, err)
		assert.Empty(t, ui.Categories())

		require.NoError(t, ui.Refresh())
		assert.Equal(t, []string{"Shared"}, names(ui.Categories()))
	})

	t.Run("Should not drop changes made elsewhere when writing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todos.yaml")
		ui, err := Open(path)
		require.NoError(t, err)
		api, err := Open(path)
		require.NoError(t, err)

		c, err := api.AddCategory("Work")
		require.NoError(t, err)

		// ui never refreshed, but the category is visible to its write.
		_, err = ui.CreateTodo(NewTodo{Name: "Report", CategoryID: c.ID, DueDate: day("2026-10-30")})
		require.NoError(t, err)
		_, err = ui.AddCategory("Home")
		require.NoError(t, err)

		require.NoError(t, api.Refresh())
		assert.Equal(t, []string{"Home", "Work"}, names(api.Categories()))
		assert.Len(t, api.Todos(), 1)
		assert.ErrorIs(t, api.DeleteCategory(c.ID), ErrCategoryInUse)
	})
}
