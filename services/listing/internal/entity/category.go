package entity

import "time"

type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	ParentID  *uint     `json:"parent_id"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}
