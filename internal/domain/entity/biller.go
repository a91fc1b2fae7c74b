package entity

import "time"

// Contact positions.
const (
	ContactPrimary   = "Primary"
	ContactSecondary = "Secondary"
)

// StatusActive is the default status of billers, contacts, items and reward rules.
const StatusActive = "Active"

// Biller is a company that issues bills payable at the counter.
type Biller struct {
	ID          string    `json:"id"`           // Generated B-YYYYMMDD-NNNN identifier, UTC date.
	CompanyName string    `json:"company_name"` // Required.
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`   // Required.
	Address     string    `json:"address"` // Required.
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Filled by listings only.
	PrimaryContactName   string `json:"primary_contact_name,omitempty"`
	PrimaryContactMobile string `json:"primary_contact_mobile,omitempty"`
}

// Snapshot returns the tracked business fields keyed by column name.
func (b *Biller) Snapshot() map[string]any {
	return map[string]any{
		"company_name": b.CompanyName,
		"email":        b.Email,
		"phone":        b.Phone,
		"address":      b.Address,
		"status":       b.Status,
	}
}

// BillerContact is a person to reach at a biller.
type BillerContact struct {
	ID       uint64 `json:"id"`
	BillerID string `json:"biller_id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Status   string `json:"status"`
	Position string `json:"position"` // Primary or Secondary.
}

// Snapshot returns the tracked contact fields keyed by column name.
func (c *BillerContact) Snapshot() map[string]any {
	return map[string]any{
		"name":     c.Name,
		"mobile":   c.Mobile,
		"status":   c.Status,
		"position": c.Position,
	}
}

// BillerDetail is a biller together with its contacts.
type BillerDetail struct {
	Biller   *Biller          `json:"biller"`
	Contacts []*BillerContact `json:"contacts"`
}
