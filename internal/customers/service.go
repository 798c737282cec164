// Package customers reads the customer_details table. Customers are
// provisioned out-of-band (statebank customer add, statebank init) and are
// read-only to the ledger core.
package customers

import (
	"fmt"

	"github.com/statebank-dev/statebank/internal/model"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

// Service provides customer lookup over the shared data file. Every call
// re-reads storage; nothing is cached across requests.
type Service struct {
	store *tabfile.Store
}

// NewService creates a customer Service.
func NewService(store *tabfile.Store) *Service {
	return &Service{store: store}
}

// All returns every customer.
func (s *Service) All() ([]model.Customer, error) {
	t, err := s.store.ReadTable(TableName)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// Get returns the customer with the given ID, or tabfile.ErrNotFound.
func (s *Service) Get(customerID string) (model.Customer, error) {
	all, err := s.All()
	if err != nil {
		return model.Customer{}, err
	}
	return find(all, customerID)
}

// Add appends a new customer row under the file lock.
func (s *Service) Add(c model.Customer) error {
	return s.store.Update(func(wb *tabfile.Workbook) error {
		if _, err := FindIn(wb, c.ID); err == nil {
			return fmt.Errorf("customer %s already exists", c.ID)
		}
		t := wb.Table(TableName)
		if t == nil {
			wb.Replace(tabfile.Table{Name: TableName, Header: Header, Rows: [][]string{MarshalCustomer(c)}})
			return nil
		}
		t.Rows = append(t.Rows, MarshalCustomer(c))
		return nil
	})
}

// FindIn looks a customer up inside an already-loaded workbook. Ledger
// writes use this so the lookup happens under the same lock acquisition as
// the append.
func FindIn(wb *tabfile.Workbook, customerID string) (model.Customer, error) {
	t := wb.Table(TableName)
	if t == nil {
		return model.Customer{}, fmt.Errorf("table %q: %w", TableName, tabfile.ErrNotFound)
	}
	all, err := FromTable(*t)
	if err != nil {
		return model.Customer{}, err
	}
	return find(all, customerID)
}

func find(all []model.Customer, customerID string) (model.Customer, error) {
	for _, c := range all {
		if c.ID == customerID {
			return c, nil
		}
	}
	return model.Customer{}, fmt.Errorf("customer %s: %w", customerID, tabfile.ErrNotFound)
}
