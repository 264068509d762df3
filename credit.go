package ledgergo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditAccount starts with the bank's credit limit as balance
// headroom. A flat per-day commission accrues as debt whenever the
// balance dips below the limit; the debt is settled against the
// balance at month end and may push it negative.
type CreditAccount struct {
	id          AccountID
	owner       uuid.UUID
	creditLimit decimal.Decimal
	commission  decimal.Decimal
	balance     decimal.Decimal
	debt        decimal.Decimal
}

var _ Account = (*CreditAccount)(nil)

func NewCreditAccount(id AccountID, owner uuid.UUID, creditLimit, commission decimal.Decimal) (*CreditAccount, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	if creditLimit.IsNegative() {
		return nil, errValidation("creditLimit", "must not be negative")
	}
	if commission.IsNegative() {
		return nil, errValidation("commission", "must not be negative")
	}

	return &CreditAccount{
		id:          id,
		owner:       owner,
		creditLimit: creditLimit,
		commission:  commission,
		balance:     creditLimit,
	}, nil
}

func (a *CreditAccount) ID() AccountID {
	return a.id
}

func (a *CreditAccount) OwnerID() uuid.UUID {
	return a.owner
}

func (a *CreditAccount) Balance() decimal.Decimal {
	return a.balance
}

func (a *CreditAccount) Limit() decimal.Decimal {
	return a.creditLimit
}

// Commission returns the flat per-day commission fixed at opening.
func (a *CreditAccount) Commission() decimal.Decimal {
	return a.commission
}

// Debt returns commission accumulated since the last settlement.
func (a *CreditAccount) Debt() decimal.Decimal {
	return a.debt
}

func (a *CreditAccount) DayChange(lastDayOfMonth bool) {
	if a.balance.LessThan(a.creditLimit) {
		a.debt = a.debt.Add(a.commission)
	}

	if lastDayOfMonth {
		a.balance = a.balance.Sub(a.debt)
		a.debt = decimal.Zero
	}
}

func (a *CreditAccount) WithdrawAllowed(amount decimal.Decimal) (bool, error) {
	if err := checkAmount(amount); err != nil {
		return false, err
	}
	return !a.balance.Sub(amount).IsNegative(), nil
}

func (a *CreditAccount) TopUp(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *CreditAccount) Withdraw(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}
