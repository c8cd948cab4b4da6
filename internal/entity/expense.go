package entity

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents an expense row for data transfer between layers.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
