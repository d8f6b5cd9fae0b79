package todo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Store keeps todos and categories in one YAML file. The terminal UI and
// the HTTP server may share the file: every change re-reads it under an
// exclusive file lock before writing, and Refresh picks up changes made
// elsewhere.
type Store struct {
	path string
	lock *flock.Flock
	now  func() time.Time

	mu   sync.RWMutex
	data storeFile
}

type storeFile struct {
	Categories []Category `yaml:"categories"`
	Todos      []Todo     `yaml:"todos"`
}

func (f storeFile) clone() storeFile {
	return storeFile{
		Categories: slices.Clone(f.Categories),
		Todos:      slices.Clone(f.Todos),
	}
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	s := &Store{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Refresh re-reads the file under a shared lock.
func (s *Store) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer s.lock.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// Categories returns categories sorted by name.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.data.Categories)
	slices.SortFunc(out, func(a, b Category) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

func (s *Store) Category(id string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := categoryIndex(&s.data, id)
	if i < 0 {
		return Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return s.data.Categories[i], nil
}

func (s *Store) AddCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, &ValidationError{Field: "name", Message: "please provide a category name"}
	}

	var c Category
	err := s.update(func(f *storeFile) error {
		for _, existing := range f.Categories {
			if strings.EqualFold(existing.Name, name) {
				return fmt.Errorf("%q: %w", name, ErrDuplicateCategory)
			}
		}
		c = Category{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: s.now(),
		}
		f.Categories = append(f.Categories, c)
		return nil
	})
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// DeleteCategory removes a category that no todo references.
func (s *Store) DeleteCategory(id string) error {
	return s.update(func(f *storeFile) error {
		i := categoryIndex(f, id)
		if i < 0 {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		for _, t := range f.Todos {
			if t.CategoryID == id {
				return fmt.Errorf("category %q: %w", f.Categories[i].Name, ErrCategoryInUse)
			}
		}
		f.Categories = slices.Delete(f.Categories, i, i+1)
		return nil
	})
}

// Todos returns todos ordered by due date, then name.
func (s *Store) Todos() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.data.Todos)
	slices.SortStableFunc(out, func(a, b Todo) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// HasTodos reports whether any todo references the category.
func (s *Store) HasTodos(categoryID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.data.Todos {
		if t.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func (s *Store) CreateTodo(in NewTodo) (Todo, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Todo{}, &ValidationError{Field: "name", Message: "please provide a name for your todo"}
	}
	if in.DueDate.IsZero() {
		return Todo{}, &ValidationError{Field: "dueDate", Message: "please select a valid due date"}
	}

	var t Todo
	err := s.update(func(f *storeFile) error {
		if categoryIndex(f, in.CategoryID) < 0 {
			return &ValidationError{Field: "categoryId", Message: "please select a category"}
		}
		t = Todo{
			ID:         uuid.NewString(),
			Name:       name,
			Status:     StatusPending,
			CategoryID: in.CategoryID,
			DueDate:    in.DueDate,
			CreatedAt:  s.now(),
		}
		f.Todos = append(f.Todos, t)
		return nil
	})
	if err != nil {
		return Todo{}, err
	}
	return t, nil
}

// ToggleTodo flips a todo between pending and done.
func (s *Store) ToggleTodo(id string) (Todo, error) {
	var t Todo
	err := s.update(func(f *storeFile) error {
		i := todoIndex(f, id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		if f.Todos[i].Status == StatusDone {
			f.Todos[i].Status = StatusPending
		} else {
			f.Todos[i].Status = StatusDone
		}
		t = f.Todos[i]
		return nil
	})
	if err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *Store) DeleteTodo(id string) error {
	return s.update(func(f *storeFile) error {
		i := todoIndex(f, id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		f.Todos = slices.Delete(f.Todos, i, i+1)
		return nil
	})
}

// update applies fn to the latest file contents and writes the result. The
// in-memory copy only changes when the write succeeds.
func (s *Store) update(fn func(f *storeFile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer s.lock.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	next := current.clone()
	if err := fn(&next); err != nil {
		s.data = current
		return err
	}
	if err := s.write(&next); err != nil {
		s.data = current
		return err
	}
	s.data = next
	return nil
}

func (s *Store) read() (storeFile, error) {
	var data storeFile
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data, nil
		}
		return data, fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return data, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return data, nil
}

func (s *Store) write(data *storeFile) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func categoryIndex(f *storeFile, id string) int {
	return slices.IndexFunc(f.Categories, func(c Category) bool { return c.ID == id })
}

func todoIndex(f *storeFile, id string) int {
	return slices.IndexFunc(f.Todos, func(t Todo) bool { return t.ID == id })
}
