// Package seed loads the demo chart of accounts and fills an empty ledger
// with random transactions.
package seed

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/ledgerbook/pkg/domain"
)

//go:embed accounts.csv
var accountsCSV string

// AccountFixture is one row of the chart of accounts.
type AccountFixture struct {
	Name string
	Type domain.AccountType
}

// LoadAccountsCSV loads the chart of accounts from a CSV file or, when path is
// empty, from the embedded default.
func LoadAccountsCSV(path string) ([]AccountFixture, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(accountsCSV)
	}
	return parseAccountsCSV(r)
}

func parseAccountsCSV(r io.Reader) ([]AccountFixture, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("invalid CSV format: missing header")
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns, got %d", len(records[0]))
	}

	fixtures := make([]AccountFixture, 0, len(records)-1)
	for i, rec := range records[1:] {
		name := strings.TrimSpace(rec[0])
		if err := domain.ValidateAccountName(name); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accountType, err := domain.ParseAccountType(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		fixtures = append(fixtures, AccountFixture{Name: name, Type: accountType})
	}
	return fixtures, nil
}
