package ledgergo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountID identifies an account by the owning bank's sequential id
// and a per-account uuid. It is immutable once assigned.
type AccountID struct {
	BankID int
	ID     uuid.UUID
}

func (id AccountID) String() string {
	return fmt.Sprintf("%d/%s", id.BankID, id.ID)
}

// Account is the capability set shared by the debit, credit, and
// deposit variants. Owner and bank are carried as non-owning
// identifiers and resolved through the bank's registries.
type Account interface {
	ID() AccountID
	OwnerID() uuid.UUID

	Balance() decimal.Decimal
	// Limit returns the variant-specific ceiling: the balance for debit
	// and deposit accounts, the credit limit for credit accounts.
	Limit() decimal.Decimal

	TopUp(amount decimal.Decimal) error
	// Withdraw subtracts amount from the balance. It validates the
	// amount only; callers must consult WithdrawAllowed first.
	Withdraw(amount decimal.Decimal) error
	WithdrawAllowed(amount decimal.Decimal) (bool, error)

	// DayChange applies one simulated day: accrual, deadline tracking,
	// and, on the last day of a month, capitalization.
	DayChange(lastDayOfMonth bool)
}

var (
	daysPerYear = decimal.NewFromInt(365)
	oneHundred  = decimal.NewFromInt(100)
)

// accrualPrecision matches the settlement rounding used across all
// interest-bearing variants: half-up at 10 fractional digits.
const accrualPrecision = 10

// dailyAccrual computes one day of interest on balance at an annual
// percent rate, rounding half-up at each of the two division steps.
func dailyAccrual(balance, percent decimal.Decimal) decimal.Decimal {
	dayRate := percent.DivRound(daysPerYear, accrualPrecision)
	return balance.Mul(dayRate).DivRound(oneHundred, accrualPrecision)
}

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errValidation("amount", "must not be negative")
	}
	return nil
}

func checkOwner(owner uuid.UUID) error {
	if owner == uuid.Nil {
		return errValidation("owner", "must not be empty")
	}
	return nil
}
