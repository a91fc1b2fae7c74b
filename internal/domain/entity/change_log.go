package entity

import "time"

// ChangeLogEntry records one field transition of an entity. Entries are
// append-only.
type ChangeLogEntry struct {
	ID        uint64    `json:"id"`         // Insertion order, breaks timestamp ties.
	Namespace string    `json:"namespace"`  // Module owning the entity, e.g. "billers".
	EntityID  string    `json:"entity_id"`  // Root entity the entry is listed under.
	Subject   string    `json:"subject"`    // Kind of record that changed, e.g. "biller" or "contact".
	SubjectID string    `json:"subject_id"` // ID of the record that changed.
	Field     string    `json:"field"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// Change-log namespaces, one per module.
const (
	NamespaceCustomers   = "customers"
	NamespaceBillers     = "billers"
	NamespaceItems       = "items"
	NamespaceItemGroups  = "item_groups"
	NamespaceSuppliers   = "suppliers"
	NamespacePromos      = "promos"
	NamespaceVouchers    = "vouchers"
	NamespaceRewardRules = "reward_rules"
	NamespaceLedger      = "rewards_ledger"
)
