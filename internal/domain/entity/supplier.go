package entity

import "time"

// Supplier is a vendor the store buys stock from.
type Supplier struct {
	ID            string    `json:"id"`   // Generated S-YYYYMMDD-NNNN identifier.
	Name          string    `json:"name"` // Required.
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"` // Required.
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Snapshot returns the tracked business fields keyed by column name.
func (s *Supplier) Snapshot() map[string]any {
	return map[string]any{
		"name":           s.Name,
		"contact_person": s.ContactPerson,
		"email":          s.Email,
		"phone":          s.Phone,
		"address":        s.Address,
		"notes":          s.Notes,
	}
}
