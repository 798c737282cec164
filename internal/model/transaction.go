package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies a ledger transaction.
type TxnType string

const (
	TxnDeposit  TxnType = "DEPOSIT"
	TxnWithdraw TxnType = "WITHDRAW"
)

// Transaction is an immutable row in the transaction_details table.
type Transaction struct {
	ID           string // txn_id, "TXN" + 6-digit sequence, global ID space
	CustomerID   string
	Date         time.Time // second precision
	Type         TxnType
	Amount       decimal.Decimal // strictly positive
	Reason       string          // free text, may be empty
	BalanceAfter decimal.Decimal // running balance snapshot after this row
}
