package model

// Credential maps a login identity to exactly one customer.
// Rows live in the login_details table and are read-only to the core.
type Credential struct {
	UserID     string
	Password   string // opaque comparison value, compared by plain equality
	CustomerID string
}
