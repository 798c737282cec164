package model

import "github.com/shopspring/decimal"

// Customer represents a row in the customer_details table.
// Customers are provisioned out-of-band; the ledger never mutates them.
type Customer struct {
	ID             string // customer_id, unique key
	Name           string
	AccountNo      string
	AccountType    string
	Email          string
	Phone          string
	City           string
	OpeningBalance decimal.Decimal // fixed at account creation
}
