// Package todo holds the todo and category model and its file-backed store.
package todo

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// DateLayout is the accepted due date format.
const DateLayout = "2006-01-02"

var (
	ErrNotFound          = errors.New("not found")
	ErrCategoryInUse     = errors.New("category still has todos")
	ErrDuplicateCategory = errors.New("category already exists")
)

type Category struct {
	ID        string    `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
}

type Todo struct {
	ID         string    `yaml:"id" json:"id"`
	Name       string    `yaml:"name" json:"name"`
	Status     Status    `yaml:"status" json:"status"`
	CategoryID string    `yaml:"category_id" json:"categoryId"`
	DueDate    time.Time `yaml:"due_date" json:"dueDate"`
	CreatedAt  time.Time `yaml:"created_at" json:"createdAt"`
}

func (t Todo) Done() bool {
	return t.Status == StatusDone
}

// Overdue reports whether a pending todo's due day is before now's day.
func (t Todo) Overdue(now time.Time) bool {
	if t.Done() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, t.DueDate.Location())
	return t.DueDate.Before(today)
}

// NewTodo is the input for creating a todo.
type NewTodo struct {
	Name       string
	CategoryID string
	DueDate    time.Time
}

// ValidationError reports a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseDueDate parses a YYYY-MM-DD date in the local time zone.
func ParseDueDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "dueDate", Message: "please select a valid due date"}
	}
	return d, nil
}
