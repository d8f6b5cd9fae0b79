package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/todo"
)

type confirmDialog struct {
	title     string
	message   string
	onConfirm func(a *App) tea.Cmd
}

func (a *App) toggleSelected() {
	t, ok := a.state.selectedTodo()
	if !ok {
		return
	}
	if _, err := a.state.store.ToggleTodo(t.ID); err != nil {
		a.storeFailed("toggle todo", err)
		return
	}
	a.state.reload()
}

func (a *App) deleteSelected() {
	t, ok := a.state.selectedTodo()
	if !ok {
		return
	}
	if err := a.state.store.DeleteTodo(t.ID); err != nil {
		a.storeFailed("delete todo", err)
		return
	}
	a.state.reload()
	a.state.notice = fmt.Sprintf("Deleted %q", t.Name)
}

func (a *App) openAddCategory() tea.Cmd {
	return a.openForm(newForm(formAddCategory,
		"Add category",
		"Give the category a name.",
		"Create category",
		newTextField("categoryName", "Category name", "e.g. School"),
	))
}

func (a *App) openAddTodo() tea.Cmd {
	if len(a.state.categories) == 0 {
		a.showAlert("Add a category first", "Create a category before adding your first todo.", false)
		return nil
	}

	options := make([]option, len(a.state.categories))
	for i, c := range a.state.categories {
		options[i] = option{label: c.Name, value: c.ID}
	}

	due := newTextField("dueDate", "Due date (YYYY-MM-DD)", todo.DateLayout)
	due.input.SetValue(time.Now().Format(todo.DateLayout))

	return a.openForm(newForm(formAddTodo,
		"Add todo",
		"Create a new todo and assign it to a category.",
		"Add todo",
		newTextField("name", "Todo name", "e.g. Finish lab report"),
		newSelectField("categoryId", "Category", options),
		due,
	))
}

func (a *App) openDeleteCategory() tea.Cmd {
	if len(a.state.categories) == 0 {
		a.showAlert("No categories to delete", "Add a category before trying to delete one.", false)
		return nil
	}

	options := make([]option, len(a.state.categories))
	for i, c := range a.state.categories {
		options[i] = option{label: c.Name, value: c.ID}
	}

	return a.openForm(newForm(formDeleteCategory,
		"Delete category",
		"Select the category you want to remove.",
		"Continue",
		newSelectField("categoryId", "Category", options),
	))
}

func (a *App) openAIHelp() tea.Cmd {
	if a.state.aiBusy {
		a.state.notice = "AI help is already working on a task"
		return nil
	}
	if a.state.helper == nil {
		msg := "No AI backend is configured."
		if a.state.providerError != nil {
			msg = a.state.providerError.Error()
		}
		a.showAlert("AI Error", msg, true)
		return nil
	}

	return a.openForm(newForm(formAIHelp,
		"AI Help for a Task",
		"Describe the task you want help accomplishing.",
		"Get help",
		newTextField("task", "Task", "e.g. Study for my biology exam"),
	))
}

func (a *App) submitForm() tea.Cmd {
	f := a.state.form
	switch f.kind {
	case formAddCategory:
		return a.submitAddCategory(f)
	case formAddTodo:
		return a.submitAddTodo(f)
	case formDeleteCategory:
		return a.submitDeleteCategory(f)
	case formAIHelp:
		return a.submitAIHelp(f)
	}
	return nil
}

func (a *App) submitAddCategory(f *form) tea.Cmd {
	name := strings.TrimSpace(f.value("categoryName"))
	if name == "" {
		f.err = "Please provide a category name before saving."
		return nil
	}

	c, err := a.state.store.AddCategory(name)
	if err != nil {
		if errors.Is(err, todo.ErrDuplicateCategory) {
			f.err = fmt.Sprintf("A category named %q already exists.", name)
			return nil
		}
		a.storeFailed("add category", err)
		return nil
	}

	a.state.form = nil
	a.state.reload()
	a.showAlert("Category added", fmt.Sprintf("Category %q is ready for todos.", c.Name), false)
	return nil
}

func (a *App) submitAddTodo(f *form) tea.Cmd {
	name := strings.TrimSpace(f.value("name"))
	if name == "" {
		f.err = "Please provide a name for your todo."
		return nil
	}
	due, err := todo.ParseDueDate(strings.TrimSpace(f.value("dueDate")))
	if err != nil {
		f.err = "Please select a valid due date."
		return nil
	}

	t, err := a.state.store.CreateTodo(todo.NewTodo{
		Name:       name,
		CategoryID: f.value("categoryId"),
		DueDate:    due,
	})
	if err != nil {
		var vErr *todo.ValidationError
		if errors.As(err, &vErr) {
			f.err = vErr.Message
			return nil
		}
		a.storeFailed("add todo", err)
		return nil
	}

	a.state.form = nil
	a.state.reload()
	a.showAlert("Todo added", fmt.Sprintf("Todo %q added successfully!", t.Name), false)
	return nil
}

func (a *App) submitDeleteCategory(f *form) tea.Cmd {
	id := f.value("categoryId")
	c, err := a.state.store.Category(id)
	if err != nil {
		a.state.form = nil
		a.showAlert("Delete category", "The selected category could not be found.", true)
		return nil
	}

	a.state.form = nil
	if a.state.store.HasTodos(id) {
		a.showAlert("Cannot delete category",
			fmt.Sprintf("Reassign or delete todos in %q before removing this category.", c.Name), true)
		return nil
	}

	a.state.confirm = &confirmDialog{
		title:   "Delete category",
		message: fmt.Sprintf("This action cannot be undone. Delete %q?", c.Name),
		onConfirm: func(a *App) tea.Cmd {
			if err := a.state.store.DeleteCategory(id); err != nil {
				if errors.Is(err, todo.ErrCategoryInUse) {
					a.showAlert("Cannot delete category",
						fmt.Sprintf("Reassign or delete todos in %q before removing this category.", c.Name), true)
					return nil
				}
				a.storeFailed("delete category", err)
				return nil
			}
			a.state.reload()
			a.showAlert("Category deleted", fmt.Sprintf("Category %q has been deleted.", c.Name), false)
			return nil
		},
	}
	a.view = viewConfirm
	return nil
}

// submitAIHelp validates locally, then hands the task to the helper. Only
// one request runs at a time.
func (a *App) submitAIHelp(f *form) tea.Cmd {
	task := strings.TrimSpace(f.value("task"))
	if task == "" {
		f.err = assist.MessageTaskRequired
		return nil
	}
	if a.state.aiBusy {
		return nil
	}

	a.state.form = nil
	a.state.aiBusy = true
	a.state.aiTask = task
	a.view = viewProcessing
	return tea.Batch(a.state.spinner.Tick, a.requestHelp(task))
}

func (a *App) storeFailed(action string, err error) {
	a.log.Error("store operation failed", "action", action, "error", err)
	a.state.form = nil
	a.showAlert("Something went wrong", fmt.Sprintf("Could not %s: %v", action, err), true)
}
