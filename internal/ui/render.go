package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/Makepad-fr/shoplist/internal/app"
	"github.com/Makepad-fr/shoplist/internal/view"
)

// TimestampLayout mirrors the en-US locale string the list has always shown.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

const maxNameWidth = 80

func Timestamp(t time.Time) string { return t.Local().Format(TimestampLayout) }

// Ago is the relative form used by the interactive view.
func Ago(t time.Time) string { return humanize.Time(t) }

// Header is the title line with checked/unchecked/total counters.
func Header(checked, unchecked int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Shopping list"),
		t.Success.Render("✔"), checked,
		t.Pending.Render("•"), unchecked,
		t.Accent.Render("Total"), checked+unchecked,
	)
}

// ViewLine summarises the active view configuration.
func ViewLine(cfg view.Config) string {
	parts := []string{"sort: " + cfg.Sort.String(), "show: " + cfg.Filter.String()}
	if cfg.Search != "" {
		s := fmt.Sprintf("search: %q", cfg.Search)
		if !cfg.SearchActive() {
			s += fmt.Sprintf(" (needs more than %d chars)", cfg.SearchThreshold)
		}
		parts = append(parts, s)
	}
	return Current().Muted.Render(strings.Join(parts, " · "))
}

// Line renders one row: 1-based store position, checkbox, name, timestamp.
func Line(r app.Row) string {
	t := Current()
	box, name := t.Muted.Render(t.BoxUnchecked), truncate(r.Name)
	if r.Checked {
		box, name = t.Success.Render(t.BoxChecked), t.Done.Render(name)
	}
	return fmt.Sprintf("%s %s %s  %s",
		t.Muted.Render(fmt.Sprintf("%2d.", r.Position+1)),
		box, name,
		t.Muted.Render(Timestamp(r.CreatedAt)),
	)
}

// Lines renders rows in projection order.
func Lines(rows []app.Row) []string {
	if len(rows) == 0 {
		return []string{Current().Muted.Render("no items")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, Line(r))
	}
	return out
}

// GroupLines splits rows into unchecked and checked sections, each keeping
// projection order.
func GroupLines(rows []app.Row) []string {
	var pend, done []app.Row
	for _, r := range rows {
		if r.Checked {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	t := Current()
	section := func(title string, rs []app.Row) []string {
		lines := []string{t.Accent.Render(title)}
		if len(rs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, Lines(rs)...)
	}
	lines := section("To buy", pend)
	lines = append(lines, "")
	return append(lines, section("In the cart", done)...)
}

// ListLines is the content of the framed list: header, progress, view
// line, rows.
func ListLines(rows []app.Row, checked, unchecked int, cfg view.Config, group bool) []string {
	lines := []string{
		Header(checked, unchecked),
		Current().Muted.Render(ProgressBar(checked, checked+unchecked, 28)),
		ViewLine(cfg),
		"",
	}
	if group {
		lines = append(lines, GroupLines(rows)...)
	} else {
		lines = append(lines, Lines(rows)...)
	}
	return lines
}

// Table writes rows as aligned columns.
func Table(w io.Writer, rows []app.Row) {
	table := uitable.New()
	table.MaxColWidth = maxNameWidth
	table.Wrap = true
	table.AddRow("#", "DONE", "NAME", "CREATED")
	for _, r := range rows {
		done := ""
		if r.Checked {
			done = "x"
		}
		table.AddRow(r.Position+1, done, r.Name, Timestamp(r.CreatedAt))
	}
	fmt.Fprintln(w, table)
}

type jsonRow struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"created_at"`
}

// JSON writes rows as an indented array. Index is 1-based, matching the
// positions the other formats print.
func JSON(w io.Writer, rows []app.Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, jsonRow{
			Index:     r.Position + 1,
			ID:        r.ID,
			Name:      r.Name,
			Checked:   r.Checked,
			CreatedAt: r.CreatedAt,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxNameWidth {
		return string(r[:maxNameWidth-3]) + "..."
	}
	return s
}
