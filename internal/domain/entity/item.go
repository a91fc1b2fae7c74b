package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item statuses. Items are never hard deleted; archiving replaces deletion.
const (
	ItemStatusActive   = "Active"
	ItemStatusArchived = "Archived"
)

// UnnamedGroup is the name given to groups created implicitly by an import.
const UnnamedGroup = "Unnamed"

// ItemGroup is a two-character inventory category.
type ItemGroup struct {
	ID   string `json:"id"` // Exactly two characters.
	Name string `json:"name"`
}

// Snapshot returns the tracked group fields keyed by column name.
func (g *ItemGroup) Snapshot() map[string]any {
	return map[string]any{"name": g.Name}
}

// Item is a stocked product.
type Item struct {
	ID           string          `json:"id"`       // <group><NNNN>, e.g. AB0001.
	GroupID      string          `json:"group_id"` // Required.
	GroupName    string          `json:"group_name,omitempty"`
	Name         string          `json:"name"` // Required.
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`    // Non-negative.
	Stock        int             `json:"stock"`         // Non-negative.
	ReorderLevel int             `json:"reorder_level"` // Non-negative.
	Barcode      string          `json:"barcode"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Snapshot returns the tracked business fields keyed by column name.
func (i *Item) Snapshot() map[string]any {
	return map[string]any{
		"name":          i.Name,
		"description":   i.Description,
		"unit_price":    i.UnitPrice,
		"stock":         i.Stock,
		"reorder_level": i.ReorderLevel,
		"barcode":       i.Barcode,
		"status":        i.Status,
	}
}

// ItemFilter narrows an item listing. Empty or "All" fields match everything.
type ItemFilter struct {
	Search  string
	GroupID string
	Status  string
}
