// Package models provides data model definitions for the reminder subsystem.
package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// UUID is a wrapper around string for UUID v4 type safety.
type UUID string

// Value implements driver.Valuer for UUID.
func (u UUID) Value() (driver.Value, error) {
	return string(u), nil
}

// Scan implements sql.Scanner for UUID.
func (u *UUID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = ""
	case string:
		*u = UUID(v)
	case []byte:
		*u = UUID(v)
	default:
		return fmt.Errorf("cannot scan %T into UUID", value)
	}
	return nil
}

// String returns the string representation of the UUID.
func (u UUID) String() string {
	return string(u)
}

// Item represents a deadline-tracked item. The remote document store owns it;
// this subsystem reads all of it but only ever writes ID and ImageRef.
type Item struct {
	ID        UUID   `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Deadline  int64  `db:"deadline" json:"deadline"`
	Category  string `db:"category" json:"category"`
	Note      string `db:"note" json:"note,omitempty"`
	ImageRef  string `db:"image_ref" json:"image_ref,omitempty"`
	Pinned    bool   `db:"pinned" json:"pinned"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

// TableName returns the local cache table name for Item.
func (Item) TableName() string {
	return "cached_items"
}

// DeadlineTime returns the Deadline as time.Time in the local time zone.
func (i *Item) DeadlineTime() time.Time {
	return time.Unix(i.Deadline, 0)
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (i *Item) CreatedAtTime() time.Time {
	return time.Unix(i.CreatedAt, 0)
}
