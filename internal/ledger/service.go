// Package ledger implements the account ledger: transaction history,
// balance derivation, and deposit/withdraw appends over the shared data
// file. Balances are always recomputed from the full history plus the
// opening balance, never taken from the last stored snapshot, so external
// edits to the history cannot cause drift.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/statebank-dev/statebank/internal/customers"
	"github.com/statebank-dev/statebank/internal/model"
	"github.com/statebank-dev/statebank/internal/tabfile"
	"github.com/statebank-dev/statebank/internal/txnid"
)

// Balance is the derived balance summary for one customer.
type Balance struct {
	Opening       decimal.Decimal
	TotalDeposit  decimal.Decimal
	TotalWithdraw decimal.Decimal
	Current       decimal.Decimal
}

// Service provides ledger operations over the shared data file. It is
// stateless apart from its store handle: every operation re-reads storage.
type Service struct {
	store     *tabfile.Store
	customers *customers.Service
	log       *logrus.Logger
	now       func() time.Time
}

// NewService creates a ledger Service.
func NewService(store *tabfile.Store) *Service {
	return &Service{
		store:     store,
		customers: customers.NewService(store),
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
}

// SetLogger overrides the service logger.
func (s *Service) SetLogger(log *logrus.Logger) {
	s.log = log
}

// GetCustomer returns the customer record, or tabfile.ErrNotFound.
func (s *Service) GetCustomer(customerID string) (model.Customer, error) {
	return s.customers.Get(customerID)
}

// GetTransactions returns the customer's transactions, most recent first.
// A customer with no history gets an empty slice, not an error.
func (s *Service) GetTransactions(customerID string) ([]model.Transaction, error) {
	t, err := s.store.ReadTable(TableName)
	if err != nil {
		return nil, err
	}
	all, err := FromTable(t)
	if err != nil {
		return nil, err
	}

	txns := forCustomer(all, customerID)
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return laterID(txns[i].ID, txns[j].ID)
	})
	return txns, nil
}

// CalculateBalance derives the customer's balance summary by replaying the
// full deposit/withdraw history on top of the opening balance.
func (s *Service) CalculateBalance(customerID string) (Balance, error) {
	cust, err := s.GetCustomer(customerID)
	if err != nil {
		return Balance{}, err
	}

	t, err := s.store.ReadTable(TableName)
	if err != nil {
		return Balance{}, err
	}
	all, err := FromTable(t)
	if err != nil {
		return Balance{}, err
	}

	return balanceOf(cust, forCustomer(all, customerID)), nil
}

// Deposit appends a DEPOSIT transaction and returns the created row.
// Amount validation is the caller's job (see validate.go); a lock timeout
// surfaces as filelock.ErrBusy for the caller to retry.
func (s *Service) Deposit(customerID string, amount decimal.Decimal, reason string) (model.Transaction, error) {
	return s.apply(customerID, model.TxnDeposit, amount, reason)
}

// Withdraw appends a WITHDRAW transaction and returns the created row.
// The insufficient-funds floor check is the caller's job, performed before
// invoking this operation.
func (s *Service) Withdraw(customerID string, amount decimal.Decimal, reason string) (model.Transaction, error) {
	return s.apply(customerID, model.TxnWithdraw, amount, reason)
}

// apply runs the whole read-compute-append sequence inside one lock
// acquisition, so concurrent writers can neither share a transaction ID nor
// compute from the same stale balance.
func (s *Service) apply(customerID string, typ model.TxnType, amount decimal.Decimal, reason string) (model.Transaction, error) {
	var created model.Transaction

	err := s.store.Update(func(wb *tabfile.Workbook) error {
		cust, err := customers.FindIn(wb, customerID)
		if err != nil {
			return err
		}

		all, err := fromWorkbook(wb)
		if err != nil {
			return err
		}

		current := balanceOf(cust, forCustomer(all, customerID)).Current
		newBalance := current.Add(amount)
		if typ == model.TxnWithdraw {
			newBalance = current.Sub(amount)
		}

		created = model.Transaction{
			ID:           txnid.Next(idsOf(all)),
			CustomerID:   customerID,
			Date:         s.now().Truncate(time.Second),
			Type:         typ,
			Amount:       amount,
			Reason:       strings.TrimSpace(reason),
			BalanceAfter: newBalance,
		}

		t := wb.Table(TableName)
		if t == nil {
			wb.Replace(tabfile.Table{Name: TableName, Header: Header, Rows: [][]string{MarshalTransaction(created)}})
			return nil
		}
		t.Rows = append(t.Rows, MarshalTransaction(created))
		return nil
	})
	if err != nil {
		return model.Transaction{}, err
	}

	s.log.WithFields(logrus.Fields{
		"txn_id":      created.ID,
		"customer_id": created.CustomerID,
		"type":        created.Type,
		"amount":      created.Amount.StringFixed(2),
	}).Info("transaction appended")

	return created, nil
}

// balanceOf derives the balance summary from a customer's full history.
func balanceOf(cust model.Customer, txns []model.Transaction) Balance {
	totalDeposit := decimal.Zero
	totalWithdraw := decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case model.TxnDeposit:
			totalDeposit = totalDeposit.Add(txn.Amount)
		case model.TxnWithdraw:
			totalWithdraw = totalWithdraw.Add(txn.Amount)
		}
	}
	return Balance{
		Opening:       cust.OpeningBalance,
		TotalDeposit:  totalDeposit,
		TotalWithdraw: totalWithdraw,
		Current:       cust.OpeningBalance.Add(totalDeposit).Sub(totalWithdraw),
	}
}

// laterID orders IDs assigned within the same second: zero-padded IDs
// compare lexically, longer ones carry a larger sequence.
func laterID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}

func forCustomer(all []model.Transaction, customerID string) []model.Transaction {
	var txns []model.Transaction
	for _, txn := range all {
		if txn.CustomerID == customerID {
			txns = append(txns, txn)
		}
	}
	return txns
}

// idsOf collects every transaction ID in the ledger. The ID space is global
// across customers, so ID assignment always scans the whole table.
func idsOf(all []model.Transaction) []string {
	ids := make([]string, 0, len(all))
	for _, txn := range all {
		ids = append(ids, txn.ID)
	}
	return ids
}
