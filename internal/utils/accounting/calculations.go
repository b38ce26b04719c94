package accounting

import (
	"fmt"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Classify maps an entry type to its ledger direction on the source account.
// Receipts and manual void reversals are debits (they increase a treasury
// balance); payments and transfers are credits.
func Classify(entryType domain.EntryType) (domain.RowDirection, error) {
	switch entryType {
	case domain.Receipt, domain.VoidReversal:
		return domain.RowDebit, nil
	case domain.Payment, domain.Transfer:
		return domain.RowCredit, nil
	default:
		return "", fmt.Errorf("unknown entry type '%s'", entryType)
	}
}

// SignedSourceEffect is the net signed effect of a posted entry on its source
// account, in the account's home currency. Charges reduce the source side
// only: receipts net the charges out of the credited amount, payments and
// transfers add them to the debit.
// This is used in both services and repositories to keep the posting math in
// one place.
func SignedSourceEffect(entryType domain.EntryType, convertedAmount, charges decimal.Decimal) (decimal.Decimal, error) {
	direction, err := Classify(entryType)
	if err != nil {
		return decimal.Zero, err
	}
	if direction == domain.RowDebit {
		return convertedAmount.Sub(charges), nil
	}
	return convertedAmount.Add(charges).Neg(), nil
}

// Round applies the persistence scale. Rounding happens exactly once, at the
// point an amount is stored; intermediate conversion math keeps full
// precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
