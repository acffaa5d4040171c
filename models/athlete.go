package models

import "time"

// Athlete identity is immutable for the lifetime of its category.
type Athlete struct {
	ID           int       `json:"id"`
	CategoryID   int       `json:"category_id"`
	Name         string    `json:"name"`
	Team         string    `json:"team,omitempty"`
	DisplayOrder int       `json:"display_order"`
	PhotoKey     *string   `json:"-"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
