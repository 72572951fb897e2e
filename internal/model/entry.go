package model

import "time"

// Entry is one item on the shopping list.
// ID is opaque and assigned once; positions change, IDs don't.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"created_at"`
}
