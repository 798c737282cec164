package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/statebank-dev/statebank/internal/model"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

// TableName is the transaction table inside the shared data file.
const TableName = "transaction_details"

// Header is the transaction_details column header.
var Header = []string{
	"txn_id", "customer_id", "txn_date", "txn_type",
	"amount", "reason", "balance_after_txn",
}

// DateFormat is the stored txn_date layout (second precision).
const DateFormat = "2006-01-02 15:04:05"

const (
	numFields   = 7
	colTxnID    = 0
	colCustID   = 1
	colDate     = 2
	colType     = 3
	colAmount   = 4
	colReason   = 5
	colBalAfter = 6
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colTxnID] = txn.ID
	row[colCustID] = txn.CustomerID
	row[colDate] = txn.Date.Format(DateFormat)
	row[colType] = string(txn.Type)
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colReason] = txn.Reason
	row[colBalAfter] = txn.BalanceAfter.StringFixed(2)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. Non-numeric
// amounts and balances coerce to zero, and an unparseable date coerces to
// the zero time: balance derivation must survive hand-edited history rather
// than fail it.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(DateFormat, record[colDate])
	if err != nil {
		date = time.Time{}
	}

	amount := decimal.Zero
	if d, err := decimal.NewFromString(record[colAmount]); err == nil {
		amount = d
	}

	balAfter := decimal.Zero
	if d, err := decimal.NewFromString(record[colBalAfter]); err == nil {
		balAfter = d
	}

	return model.Transaction{
		ID:           record[colTxnID],
		CustomerID:   record[colCustID],
		Date:         date,
		Type:         model.TxnType(record[colType]),
		Amount:       amount,
		Reason:       record[colReason],
		BalanceAfter: balAfter,
	}, nil
}

// FromTable decodes the transaction table.
func FromTable(t tabfile.Table) ([]model.Transaction, error) {
	var txns []model.Transaction
	for i, rec := range t.Rows {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// fromWorkbook decodes all transactions from a loaded workbook; a missing
// transaction table is an empty history here, since ledger writes create it.
func fromWorkbook(wb *tabfile.Workbook) ([]model.Transaction, error) {
	t := wb.Table(TableName)
	if t == nil {
		return nil, nil
	}
	return FromTable(*t)
}
