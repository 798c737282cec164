package customers

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/statebank-dev/statebank/internal/model"
)

// AccountTypes the demo bank offers.
var AccountTypes = []string{"SAVINGS", "CURRENT"}

// NewCustomerID generates a customer ID like "CUST-7F3A21B0".
func NewCustomerID() string {
	return "CUST-" + strings.ToUpper(uuid.NewString()[:8])
}

// NewAccountNo generates an account number like "ACC4F2810C9D3E7".
func NewAccountNo() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ACC" + hex[:12]
}

// Demo generates n fake customers for seeding a fresh data file.
func Demo(n int) []model.Customer {
	custs := make([]model.Customer, 0, n)
	for i := 0; i < n; i++ {
		custs = append(custs, model.Customer{
			ID:             fmt.Sprintf("CUST-%04d", 1001+i),
			Name:           gofakeit.Name(),
			AccountNo:      NewAccountNo(),
			AccountType:    AccountTypes[i%len(AccountTypes)],
			Email:          gofakeit.Email(),
			Phone:          gofakeit.Phone(),
			City:           gofakeit.City(),
			OpeningBalance: decimal.NewFromInt(int64(gofakeit.Number(500, 10000))),
		})
	}
	return custs
}

// DemoCredentials generates one login per demo customer. The user ID is
// derived from the customer ID so seeded logins are predictable.
func DemoCredentials(custs []model.Customer) []model.Credential {
	creds := make([]model.Credential, 0, len(custs))
	for _, c := range custs {
		creds = append(creds, model.Credential{
			UserID:     strings.ToLower(strings.ReplaceAll(c.ID, "CUST-", "user")),
			Password:   gofakeit.Password(true, true, true, false, false, 10),
			CustomerID: c.ID,
		})
	}
	return creds
}
