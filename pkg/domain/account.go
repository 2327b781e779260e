package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxAccountNameLength bounds account names to the width of the accounts.name column.
const MaxAccountNameLength = 255

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeEquity,
}

// String implements fmt.Stringer.
func (t AccountType) String() string { return string(t) }

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseAccountType validates s and returns it as an AccountType.
// Matching is case-sensitive.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
	return t, nil
}

// ValidateAccountName checks that name is non-empty and fits the storage column.
// Names are compared byte-for-byte, so no normalization happens here.
func ValidateAccountName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: account name must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: account name exceeds %d characters", ErrValidation, MaxAccountNameLength)
	}
	return nil
}
