package models

import "time"

// Category is one competition class (for example "Male Speed Open").
// FalseStartRule and Precision drive match resolution and time display
// for every bracket and standings computation in the category.
type Category struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	FalseStartRule FalseStartRule `json:"false_start_rule"`
	Precision      int            `json:"precision"` // displayed decimals, 2 or 3
	CreatedAt      time.Time      `json:"created_at"`
}
