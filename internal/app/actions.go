package app

import (
	"log/slog"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// Action is a user intent. Data actions mutate the store, view actions only
// change the projection.
type Action interface {
	Kind() string
	apply(*Session) error
}

type Add struct{ Name string }

// Toggle, Delete and Rename address entries by ID so a handle taken from an
// earlier render stays valid across reorders.
type Toggle struct{ ID string }

type Delete struct{ ID string }

type Rename struct {
	ID   string
	Name string
}

// ToggleAt, DeleteAt and RenameAt address entries by store position, as the
// one-shot CLI does. Positions go stale after any delete.
type ToggleAt struct{ Index int }

type DeleteAt struct{ Index int }

type RenameAt struct {
	Index int
	Name  string
}

type SetSort struct{ Mode model.SortMode }

type SetFilter struct{ Filter model.CheckedFilter }

type SetSearch struct{ Term string }

func (Add) Kind() string       { return "add" }
func (Toggle) Kind() string    { return "toggle" }
func (Delete) Kind() string    { return "delete" }
func (Rename) Kind() string    { return "rename" }
func (ToggleAt) Kind() string  { return "toggle" }
func (DeleteAt) Kind() string  { return "delete" }
func (RenameAt) Kind() string  { return "rename" }
func (SetSort) Kind() string   { return "sort" }
func (SetFilter) Kind() string { return "filter" }
func (SetSearch) Kind() string { return "search" }

func (a Add) apply(s *Session) error {
	e := s.store.Add(a.Name)
	s.logger.Info("added", slog.String("id", e.ID), slog.String("name", e.Name))
	return nil
}

func (a Toggle) apply(s *Session) error {
	i, err := s.resolve("toggle", a.ID)
	if err != nil {
		return err
	}
	return ToggleAt{Index: i}.apply(s)
}

func (a Delete) apply(s *Session) error {
	i, err := s.resolve("delete", a.ID)
	if err != nil {
		return err
	}
	return DeleteAt{Index: i}.apply(s)
}

func (a Rename) apply(s *Session) error {
	i, err := s.resolve("rename", a.ID)
	if err != nil {
		return err
	}
	return RenameAt{Index: i, Name: a.Name}.apply(s)
}

func (a ToggleAt) apply(s *Session) error {
	if err := s.store.Toggle(a.Index); err != nil {
		return err
	}
	s.logger.Info("toggled", slog.Int("index", a.Index))
	return nil
}

func (a DeleteAt) apply(s *Session) error {
	if err := s.store.Delete(a.Index); err != nil {
		return err
	}
	s.logger.Info("deleted", slog.Int("index", a.Index))
	return nil
}

func (a RenameAt) apply(s *Session) error {
	if err := s.store.Rename(a.Index, a.Name); err != nil {
		return err
	}
	s.logger.Info("renamed", slog.Int("index", a.Index), slog.String("name", a.Name))
	return nil
}

func (a SetSort) apply(s *Session) error {
	s.config.Sort = a.Mode
	return nil
}

func (a SetFilter) apply(s *Session) error {
	s.config.Filter = a.Filter
	return nil
}

func (a SetSearch) apply(s *Session) error {
	s.config.Search = a.Term
	return nil
}
