package customers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/statebank-dev/statebank/internal/model"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

// TableName is the customer table inside the shared data file.
const TableName = "customer_details"

// Header is the customer_details column header.
var Header = []string{
	"customer_id", "customer_name", "account_no", "account_type",
	"email", "phone", "city", "opening_balance",
}

const (
	numFields  = 8
	colID      = 0
	colName    = 1
	colAcctNo  = 2
	colAcctTyp = 3
	colEmail   = 4
	colPhone   = 5
	colCity    = 6
	colOpening = 7
)

// MarshalCustomer converts a Customer to a CSV row.
func MarshalCustomer(c model.Customer) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colName] = c.Name
	row[colAcctNo] = c.AccountNo
	row[colAcctTyp] = c.AccountType
	row[colEmail] = c.Email
	row[colPhone] = c.Phone
	row[colCity] = c.City
	row[colOpening] = c.OpeningBalance.StringFixed(2)
	return row
}

// UnmarshalCustomer converts a CSV row to a Customer. A non-numeric or
// missing opening balance coerces to zero rather than failing the read.
func UnmarshalCustomer(record []string) (model.Customer, error) {
	if len(record) != numFields {
		return model.Customer{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	opening := decimal.Zero
	if record[colOpening] != "" {
		if d, err := decimal.NewFromString(record[colOpening]); err == nil {
			opening = d
		}
	}

	return model.Customer{
		ID:             record[colID],
		Name:           record[colName],
		AccountNo:      record[colAcctNo],
		AccountType:    record[colAcctTyp],
		Email:          record[colEmail],
		Phone:          record[colPhone],
		City:           record[colCity],
		OpeningBalance: opening,
	}, nil
}

// FromTable decodes the customer table.
func FromTable(t tabfile.Table) ([]model.Customer, error) {
	var custs []model.Customer
	for i, rec := range t.Rows {
		c, err := UnmarshalCustomer(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		custs = append(custs, c)
	}
	return custs, nil
}

// ToTable encodes customers as the customer table.
func ToTable(custs []model.Customer) tabfile.Table {
	t := tabfile.Table{Name: TableName, Header: Header}
	for _, c := range custs {
		t.Rows = append(t.Rows, MarshalCustomer(c))
	}
	return t
}
