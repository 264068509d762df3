package ledgergo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebitAccount accrues interest daily at an annual rate and folds the
// accruals into the balance on the last day of each month.
type DebitAccount struct {
	id       AccountID
	owner    uuid.UUID
	percent  decimal.Decimal
	balance  decimal.Decimal
	accruals decimal.Decimal
}

var _ Account = (*DebitAccount)(nil)

func NewDebitAccount(id AccountID, owner uuid.UUID, percent decimal.Decimal) (*DebitAccount, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	if percent.IsNegative() {
		return nil, errValidation("percent", "must not be negative")
	}

	return &DebitAccount{
		id:      id,
		owner:   owner,
		percent: percent,
	}, nil
}

func (a *DebitAccount) ID() AccountID {
	return a.id
}

func (a *DebitAccount) OwnerID() uuid.UUID {
	return a.owner
}

func (a *DebitAccount) Balance() decimal.Decimal {
	return a.balance
}

func (a *DebitAccount) Limit() decimal.Decimal {
	return a.balance
}

// Percent returns the annual interest rate fixed at account opening.
func (a *DebitAccount) Percent() decimal.Decimal {
	return a.percent
}

// Accruals returns interest accumulated since the last capitalization.
func (a *DebitAccount) Accruals() decimal.Decimal {
	return a.accruals
}

func (a *DebitAccount) DayChange(lastDayOfMonth bool) {
	a.accruals = a.accruals.Add(dailyAccrual(a.balance, a.percent))

	if lastDayOfMonth {
		a.balance = a.balance.Add(a.accruals)
		a.accruals = decimal.Zero
	}
}

func (a *DebitAccount) WithdrawAllowed(amount decimal.Decimal) (bool, error) {
	if err := checkAmount(amount); err != nil {
		return false, err
	}
	return !a.balance.Sub(amount).IsNegative(), nil
}

func (a *DebitAccount) TopUp(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *DebitAccount) Withdraw(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}
