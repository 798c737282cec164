// Package auth validates login credentials against the login_details table.
// Comparison is plain equality on the stored values; any real deployment
// would swap this for a salted-hash scheme, but the stored format is part of
// the shared-file contract here.
package auth

import (
	"errors"
	"strings"

	"github.com/statebank-dev/statebank/internal/model"
	"github.com/statebank-dev/statebank/internal/tabfile"
)

// TableName is the credential table inside the shared data file.
const TableName = "login_details"

// Header is the login_details column header.
var Header = []string{"user_id", "password", "customer_id"}

// Service looks up credentials in the shared data file.
type Service struct {
	store *tabfile.Store
}

// NewService creates an auth Service.
func NewService(store *tabfile.Store) *Service {
	return &Service{store: store}
}

// Validate checks userID and password against the credential table and
// returns the matched customer ID. Inputs are trimmed of surrounding
// whitespace; the comparison itself is exact and case-sensitive. A missing
// table or missing required columns is a definite "no match", never an
// error, so an unconfigured install cannot crash the login path.
func (s *Service) Validate(userID, password string) (string, bool, error) {
	userID = strings.TrimSpace(userID)
	password = strings.TrimSpace(password)
	if userID == "" || password == "" {
		return "", false, nil
	}

	t, err := s.store.ReadTable(TableName)
	if errors.Is(err, tabfile.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	colUser, colPass, colCust, ok := columnIndexes(t.Header)
	if !ok {
		return "", false, nil
	}

	for _, row := range t.Rows {
		if row[colUser] == userID && row[colPass] == password {
			return row[colCust], true, nil
		}
	}
	return "", false, nil
}

// MarshalCredential converts a Credential to a CSV row in Header order.
func MarshalCredential(c model.Credential) []string {
	return []string{c.UserID, c.Password, c.CustomerID}
}

// ToTable encodes credentials as the login table.
func ToTable(creds []model.Credential) tabfile.Table {
	t := tabfile.Table{Name: TableName, Header: Header}
	for _, c := range creds {
		t.Rows = append(t.Rows, MarshalCredential(c))
	}
	return t
}

// columnIndexes resolves the required columns by header name so column
// order in the file does not matter.
func columnIndexes(header []string) (user, pass, cust int, ok bool) {
	user, pass, cust = -1, -1, -1
	for i, name := range header {
		switch name {
		case "user_id":
			user = i
		case "password":
			pass = i
		case "customer_id":
			cust = i
		}
	}
	return user, pass, cust, user >= 0 && pass >= 0 && cust >= 0
}
