package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// Seed files are read once at startup. The list is never written back.

var (
	ErrBadRecord = errors.New("invalid seed record")
	ErrNoItems   = errors.New(`seed document has no "items" key`)
)

// Record is one entry in a seed file. CreatedAt wins over Age when both are
// set; with neither the entry is stamped with the load time.
type Record struct {
	Name      string     `json:"name" yaml:"name"`
	Checked   bool       `json:"checked" yaml:"checked"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Age       string     `json:"age,omitempty" yaml:"age,omitempty"`
}

type file struct {
	Items *[]Record `json:"items" yaml:"items"`
}

// Default is the built-in list every session starts from.
func Default(now time.Time) []model.Entry {
	return []model.Entry{
		{Name: "apples", CreatedAt: now.Add(-1000 * time.Second)},
		{Name: "oranges", CreatedAt: now.Add(-4000 * time.Second)},
		{Name: "milk", Checked: true, CreatedAt: now.Add(-2000 * time.Second)},
		{Name: "bread", CreatedAt: now.Add(-3000 * time.Second)},
	}
}

// Load reads entries from a YAML or JSON seed file. An empty path yields
// Default.
func Load(path string, now time.Time) ([]model.Entry, error) {
	if path == "" {
		return Default(now), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(b, filepath.Ext(path), now)
}

// Parse decodes seed content. ext selects the codec (".json" or YAML for
// anything else). Both a bare list and a document with an "items" key are
// accepted; a document must not carry any other key.
func Parse(b []byte, ext string, now time.Time) ([]model.Entry, error) {
	var recs []Record
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &recs); err != nil {
			var f file
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&f); err != nil {
				return nil, fmt.Errorf("json unmarshal: %w", err)
			}
			if recs, err = f.records(); err != nil {
				return nil, err
			}
		}
	default:
		if err := yaml.Unmarshal(b, &recs); err != nil {
			var f file
			dec := yaml.NewDecoder(bytes.NewReader(b))
			dec.KnownFields(true)
			if err := dec.Decode(&f); err != nil {
				return nil, fmt.Errorf("yaml unmarshal: %w", err)
			}
			if recs, err = f.records(); err != nil {
				return nil, err
			}
		}
	}

	out := make([]model.Entry, 0, len(recs))
	for i, r := range recs {
		e, err := r.entry(now)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (f file) records() ([]Record, error) {
	if f.Items == nil {
		return nil, ErrNoItems
	}
	return *f.Items, nil
}

func (r Record) entry(now time.Time) (model.Entry, error) {
	e := model.Entry{Name: r.Name, Checked: r.Checked, CreatedAt: now}
	switch {
	case r.CreatedAt != nil:
		e.CreatedAt = *r.CreatedAt
	case r.Age != "":
		d, err := time.ParseDuration(r.Age)
		if err != nil {
			return model.Entry{}, fmt.Errorf("%w: age %q: %v", ErrBadRecord, r.Age, err)
		}
		if d < 0 {
			return model.Entry{}, fmt.Errorf("%w: negative age %q", ErrBadRecord, r.Age)
		}
		e.CreatedAt = now.Add(-d)
	}
	return e, nil
}
