package tabfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWorkbook(t *testing.T) {
	input := strings.Join([]string{
		"#table login_details",
		"user_id,password,customer_id",
		"alice,secret,CUST-0001",
		"#table customer_details",
		"customer_id,customer_name",
		"CUST-0001,Alice Zhang",
	}, "\n") + "\n"

	wb, err := ReadWorkbook(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, wb.Tables, 2)

	login := wb.Table("login_details")
	require.NotNil(t, login)
	assert.Equal(t, []string{"user_id", "password", "customer_id"}, login.Header)
	require.Len(t, login.Rows, 1)
	assert.Equal(t, []string{"alice", "secret", "CUST-0001"}, login.Rows[0])

	assert.Nil(t, wb.Table("transaction_details"))
}

func TestRoundTrip(t *testing.T) {
	wb := &Workbook{Tables: []*Table{
		{
			Name:   "customer_details",
			Header: []string{"customer_id", "customer_name", "city"},
			Rows: [][]string{
				{"CUST-0001", "Zhang, Alice", "Pune"},
				{"CUST-0002", "Bob \"Bo\" Lee", "Delhi"},
			},
		},
		{
			Name:   "transaction_details",
			Header: []string{"txn_id", "amount"},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, wb))

	got, err := ReadWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, got.Tables, 2)
	assert.Equal(t, wb.Tables[0].Rows, got.Table("customer_details").Rows)

	// Header-only table survives as empty, not missing.
	txns := got.Table("transaction_details")
	require.NotNil(t, txns)
	assert.Equal(t, []string{"txn_id", "amount"}, txns.Header)
	assert.Empty(t, txns.Rows)
}

func TestQuotedFieldsDoNotBreakSections(t *testing.T) {
	// A field containing commas, quotes, and a newline that looks like a
	// marker must stay a plain field.
	tricky := "line one\n#table fake\nline, two \"quoted\""
	wb := &Workbook{Tables: []*Table{
		{
			Name:   "transaction_details",
			Header: []string{"txn_id", "reason"},
			Rows:   [][]string{{"TXN000001", tricky}},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, wb))

	got, err := ReadWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, got.Tables, 1)
	require.Len(t, got.Table("transaction_details").Rows, 1)
	assert.Equal(t, tricky, got.Table("transaction_details").Rows[0][1])
}

func TestReplacePreservesOrder(t *testing.T) {
	wb := &Workbook{Tables: []*Table{
		{Name: "a", Header: []string{"x"}},
		{Name: "b", Header: []string{"y"}, Rows: [][]string{{"1"}}},
	}}

	wb.Replace(Table{Name: "a", Header: []string{"x"}, Rows: [][]string{{"9"}}})
	require.Len(t, wb.Tables, 2)
	assert.Equal(t, "a", wb.Tables[0].Name)
	assert.Equal(t, [][]string{{"9"}}, wb.Tables[0].Rows)

	wb.Replace(Table{Name: "c", Header: []string{"z"}})
	require.Len(t, wb.Tables, 3)
	assert.Equal(t, "c", wb.Tables[2].Name)
}

func TestReadWorkbookErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"data before marker", "user_id,password\nalice,secret\n"},
		{"duplicate table", "#table a\nx\n#table a\nx\n"},
		{"ragged row", "#table a\nx,y\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWorkbook(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadWorkbookEmpty(t *testing.T) {
	wb, err := ReadWorkbook(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, wb.Tables)
}
