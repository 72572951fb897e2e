package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shoplist/internal/model"
)

func seq() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func groceries() []model.Entry {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Entry{
		{Name: "apples", CreatedAt: base.Add(-1000 * time.Second)},
		{Name: "oranges", CreatedAt: base.Add(-4000 * time.Second)},
		{Name: "milk", Checked: true, CreatedAt: base.Add(-2000 * time.Second)},
		{Name: "bread", CreatedAt: base.Add(-3000 * time.Second)},
	}
}

func names(entries []model.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestNewAssignsMissingIDs(t *testing.T) {
	seed := groceries()
	seed[1].ID = "keep-me"
	s := New(WithEntries(seed), WithIDGenerator(seq()))

	got := s.Snapshot()
	require.Len(t, got, 4)
	assert.Equal(t, "id-1", got[0].ID)
	assert.Equal(t, "keep-me", got[1].ID)
	assert.Equal(t, "id-2", got[2].ID)
	assert.Equal(t, "", seed[0].ID, "seed slice must not be written to")
}

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, model.SortByName, s.DefaultSort())

	e := s.Add("x")
	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)

	s = New(WithDefaultSort(model.SortByCreated))
	assert.Equal(t, model.SortByCreated, s.DefaultSort())
}

func TestAddAppendsUnchecked(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithEntries(groceries()), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	first := s.Add("eggs")
	second := s.Add("")

	got := s.Snapshot()
	require.Len(t, got, 6)
	assert.Equal(t, first, got[4])
	assert.Equal(t, second, got[5])
	assert.False(t, got[4].Checked)
	assert.False(t, got[5].Checked)
	assert.Equal(t, "", got[5].Name)
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestToggleIsInvolution(t *testing.T) {
	s := New(WithEntries(groceries()))
	for i := 0; i < s.Len(); i++ {
		before, err := s.At(i)
		require.NoError(t, err)

		require.NoError(t, s.Toggle(i))
		mid, _ := s.At(i)
		assert.Equal(t, !before.Checked, mid.Checked)

		require.NoError(t, s.Toggle(i))
		after, _ := s.At(i)
		assert.Equal(t, before, after)
	}
}

func TestDeleteShiftsLeft(t *testing.T) {
	s := New(WithEntries(groceries()))
	before := s.Snapshot()

	require.NoError(t, s.Delete(1))

	after := s.Snapshot()
	require.Len(t, after, len(before)-1)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[1])
	assert.Equal(t, before[3], after[2])
	_, ok := s.IndexOf(before[1].ID)
	assert.False(t, ok)
}

func TestRenameInPlace(t *testing.T) {
	s := New(WithEntries(groceries()))
	before, _ := s.At(3)

	require.NoError(t, s.Rename(3, "sourdough"))

	after, _ := s.At(3)
	assert.Equal(t, "sourdough", after.Name)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Checked, after.Checked)
}

func TestIndexOutOfRange(t *testing.T) {
	s := New(WithEntries(groceries()))
	before := s.Snapshot()

	ops := map[string]func(int) error{
		"toggle": s.Toggle,
		"delete": s.Delete,
		"rename": func(i int) error { return s.Rename(i, "x") },
		"at": func(i int) error {
			_, err := s.At(i)
			return err
		},
	}
	for op, fn := range ops {
		for _, idx := range []int{-1, 4, 100} {
			err := fn(idx)
			require.ErrorIs(t, err, ErrIndexOutOfRange, "%s(%d)", op, idx)

			var ie *IndexError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, op, ie.Op)
			assert.Equal(t, idx, ie.Index)
			assert.Equal(t, 4, ie.Len)
		}
	}
	assert.Equal(t, before, s.Snapshot(), "failed mutations must leave the store untouched")
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := New(WithEntries(groceries()))
	snap := s.Snapshot()

	require.NoError(t, s.Toggle(0))
	require.NoError(t, s.Rename(1, "tangerines"))
	require.NoError(t, s.Delete(3))

	assert.Equal(t, []string{"apples", "oranges", "milk", "bread"}, names(snap))
	assert.False(t, snap[0].Checked)
}

func TestGetAndIndexOf(t *testing.T) {
	s := New(WithEntries(groceries()), WithIDGenerator(seq()))

	i, ok := s.IndexOf("id-3")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	e, ok := s.Get("id-3")
	require.True(t, ok)
	assert.Equal(t, "milk", e.Name)

	require.NoError(t, s.Delete(0))
	i, _ = s.IndexOf("id-3")
	assert.Equal(t, 1, i)

	_, ok = s.Get("id-1")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	s := New(WithEntries(groceries()))
	checked, unchecked := s.Stats()
	assert.Equal(t, 1, checked)
	assert.Equal(t, 3, unchecked)
}

func TestToggleThenDeleteScenario(t *testing.T) {
	s := New(WithEntries(groceries()))

	require.NoError(t, s.Toggle(2))
	require.NoError(t, s.Delete(0))

	got := s.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"oranges", "milk", "bread"}, names(got))
	for _, e := range got {
		assert.False(t, e.Checked, e.Name)
	}
}
