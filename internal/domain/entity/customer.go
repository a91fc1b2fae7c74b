package entity

import "time"

// Customer is a loyalty customer of the store.
type Customer struct {
	ID         string    `json:"id"`          // Generated C-YYYYMMDD-NNNN identifier.
	FirstName  string    `json:"first_name"`  // Required.
	LastName   string    `json:"last_name"`   // Optional.
	Phone      string    `json:"phone"`       // Required.
	Email      string    `json:"email"`       // Optional.
	Address    string    `json:"address"`     // Required.
	Type       string    `json:"type"`        // Customer classification, e.g. Regular or VIP.
	Status     string    `json:"status"`      // Active or Inactive.
	DateJoined Date      `json:"date_joined"` // Defaults to the day of creation.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Snapshot returns the tracked business fields keyed by column name.
func (c *Customer) Snapshot() map[string]any {
	return map[string]any{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
		"type":       c.Type,
		"status":     c.Status,
	}
}

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	Type   string
	Status string
}

// PointsEquivalent is the peso value of one loyalty point for a customer.
type PointsEquivalent struct {
	CustomerID string  `json:"customer_id"`
	Rate       float64 `json:"rate"`
}

// DefaultPointsRate applies when a customer has no earning history.
const DefaultPointsRate = 0.01
