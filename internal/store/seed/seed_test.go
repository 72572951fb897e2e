package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestDefault(t *testing.T) {
	got := Default(now)
	require.Len(t, got, 4)

	assert.Equal(t, "apples", got[0].Name)
	assert.Equal(t, now.Add(-1000*time.Second), got[0].CreatedAt)
	assert.Equal(t, "oranges", got[1].Name)
	assert.Equal(t, now.Add(-4000*time.Second), got[1].CreatedAt)
	assert.Equal(t, "milk", got[2].Name)
	assert.True(t, got[2].Checked)
	assert.Equal(t, "bread", got[3].Name)
	assert.False(t, got[3].Checked)
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	got, err := Load("", now)
	require.NoError(t, err)
	assert.Equal(t, Default(now), got)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "list.yaml")
	content := `
- name: coffee
  age: 90m
- name: filters
  checked: true
  created_at: 2024-02-29T08:30:00Z
- name: sugar
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	got, err := Load(p, now)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "coffee", got[0].Name)
	assert.Equal(t, now.Add(-90*time.Minute), got[0].CreatedAt)
	assert.True(t, got[1].Checked)
	assert.Equal(t, time.Date(2024, 2, 29, 8, 30, 0, 0, time.UTC), got[1].CreatedAt.UTC())
	assert.Equal(t, now, got[2].CreatedAt)
}

func TestParseItemsDocument(t *testing.T) {
	got, err := Parse([]byte("items:\n  - name: tea\n"), ".yml", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tea", got[0].Name)

	got, err = Parse([]byte(`{"items":[{"name":"rice","checked":true}]}`), ".json", now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rice", got[0].Name)
	assert.True(t, got[0].Checked)
}

func TestParseJSONList(t *testing.T) {
	got, err := Parse([]byte(`[{"name":"a","age":"1h"},{"name":"b"}]`), ".JSON", now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, now.Add(-time.Hour), got[0].CreatedAt)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`[{"name":"a","age":"soon"}]`), ".json", now)
	require.ErrorIs(t, err, ErrBadRecord)
	assert.Contains(t, err.Error(), "record 0")

	_, err = Parse([]byte(`- name: a
  age: -5m
`), ".yaml", now)
	require.ErrorIs(t, err, ErrBadRecord)

	_, err = Parse([]byte(`{not json`), ".json", now)
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), now)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseDocumentKeys(t *testing.T) {
	_, err := Parse([]byte("item:\n  - name: eggs\n"), ".yaml", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item")

	_, err = Parse([]byte(`{"itemz":[{"name":"eggs"}]}`), ".json", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itemz")

	_, err = Parse([]byte(`{}`), ".json", now)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = Parse([]byte("name: eggs\n"), ".yaml", now)
	require.Error(t, err)

	got, err := Parse([]byte("items: []\n"), ".yaml", now)
	require.NoError(t, err)
	assert.Empty(t, got)
}
