package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// In-memory list. Contents live as long as the process; nothing is written
// back anywhere. Not safe for concurrent use: every call happens on the
// goroutine that handles user input.

// Store owns the live entries and the default sort preference.
type Store struct {
	entries     []model.Entry
	defaultSort model.SortMode
	now         func() time.Time
	newID       func() string
}

// Option configures a Store.
type Option func(*Store)

// WithEntries seeds the store. Entries without an ID get one.
func WithEntries(seed []model.Entry) Option {
	return func(s *Store) {
		s.entries = append(s.entries[:0], seed...)
	}
}

func WithDefaultSort(mode model.SortMode) Option {
	return func(s *Store) { s.defaultSort = mode }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{
		defaultSort: model.SortByName,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.entries {
		if s.entries[i].ID == "" {
			s.entries[i].ID = s.newID()
		}
	}
	return s
}

func (s *Store) DefaultSort() model.SortMode { return s.defaultSort }

func (s *Store) Len() int { return len(s.entries) }

// Snapshot returns a copy of the entries in store order.
func (s *Store) Snapshot() []model.Entry {
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the entry at index.
func (s *Store) At(index int) (model.Entry, error) {
	if err := s.check("at", index); err != nil {
		return model.Entry{}, err
	}
	return s.entries[index], nil
}

// IndexOf resolves an ID to its current position.
func (s *Store) IndexOf(id string) (int, bool) {
	for i, e := range s.entries {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) Get(id string) (model.Entry, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return model.Entry{}, false
	}
	return s.entries[i], true
}

// Add appends an unchecked entry stamped with the current time. Empty names
// are accepted; rejecting them is up to the caller.
func (s *Store) Add(name string) model.Entry {
	e := model.Entry{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.entries = append(s.entries, e)
	return e
}

// Toggle flips Checked on the entry at index.
func (s *Store) Toggle(index int) error {
	if err := s.check("toggle", index); err != nil {
		return err
	}
	s.entries[index].Checked = !s.entries[index].Checked
	return nil
}

// Delete removes the entry at index; later entries shift left by one.
func (s *Store) Delete(index int) error {
	if err := s.check("delete", index); err != nil {
		return err
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return nil
}

func (s *Store) Rename(index int, name string) error {
	if err := s.check("rename", index); err != nil {
		return err
	}
	s.entries[index].Name = name
	return nil
}

// Stats counts checked and unchecked entries.
func (s *Store) Stats() (checked, unchecked int) {
	for _, e := range s.entries {
		if e.Checked {
			checked++
		} else {
			unchecked++
		}
	}
	return
}

func (s *Store) check(op string, index int) error {
	if index < 0 || index >= len(s.entries) {
		return &IndexError{Op: op, Index: index, Len: len(s.entries)}
	}
	return nil
}
