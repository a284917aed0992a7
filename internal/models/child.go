package models

import "time"

// Child represents a child profile owned by a parent account
type Child struct {
	ID        int64     `db:"id" json:"id"`
	ParentID  int64     `db:"parent_id" json:"parent_id"`
	Name      string    `db:"name" json:"name"`
	Age       *int      `db:"age" json:"age"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
