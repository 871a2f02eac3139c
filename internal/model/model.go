package model

import "time"

type Notebook struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Section belongs to exactly one notebook; ownership is expressed by the
// snapshot's sections map (notebook id -> ordered sections), not a parent link.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Page is a single authored document. Content is the serialized rich-text
// document (see internal/richtext); the tree treats it as an opaque string
// except when searching.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Starred   bool      `json:"starred"`
	// Trashed pages are soft-deleted: hidden from every listing and search,
	// but retained in storage.
	Trashed bool `json:"trashed"`
}
