// Package app ties the store and the projector into one pipeline:
// dispatch an action, mutate if it changes data, re-project, hand rows to
// whoever renders them.
package app

import (
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/store"
	"github.com/Makepad-fr/shoplist/internal/view"
)

// Row is one projected entry plus its current position in the store.
// Position is only valid until the next mutation; ID is stable.
type Row struct {
	model.Entry
	Position int
}

// Session owns one store and the view configuration applied to it.
type Session struct {
	store  *store.Store
	config view.Config
	logger *slog.Logger
}

func NewSession(s *store.Store, cfg view.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Sort == "" {
		cfg.Sort = s.DefaultSort()
	}
	if cfg.Filter == "" {
		cfg.Filter = model.FilterAll
	}
	return &Session{store: s, config: cfg, logger: logger}
}

func (s *Session) Store() *store.Store { return s.store }

func (s *Session) Config() view.Config { return s.config }

// Dispatch applies a and returns the re-projected rows. On error nothing
// has changed and the rows reflect the unchanged state.
func (s *Session) Dispatch(a Action) ([]Row, error) {
	if err := a.apply(s); err != nil {
		s.logger.Info("action rejected", slog.String("action", a.Kind()), slog.String("error", err.Error()))
		return s.Rows(), err
	}
	s.logger.Debug("action applied", slog.String("action", a.Kind()), slog.Int("entries", s.store.Len()))
	return s.Rows(), nil
}

// Rows projects the current store through the current configuration.
func (s *Session) Rows() []Row {
	entries := view.Project(s.store.Snapshot(), s.config)
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		pos, _ := s.store.IndexOf(e.ID)
		rows = append(rows, Row{Entry: e, Position: pos})
	}
	s.logger.Debug("projected",
		slog.String("sort", s.config.Sort.String()),
		slog.String("filter", s.config.Filter.String()),
		slog.String("search", s.config.Search),
		slog.Int("rows", len(rows)),
	)
	return rows
}

// resolve maps an entry ID to its current position. A missing ID is a
// stale handle and reported the same way as a bad index.
func (s *Session) resolve(op, id string) (int, error) {
	i, ok := s.store.IndexOf(id)
	if !ok {
		return -1, fmt.Errorf("%s %q: %w", op, id, store.ErrIndexOutOfRange)
	}
	return i, nil
}
