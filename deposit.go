package ledgergo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositAccount locks withdrawals until its deadline date is reached.
// It accrues interest like a debit account but stops capitalizing once
// the deadline has passed; the unlock is permanent.
type DepositAccount struct {
	id              AccountID
	owner           uuid.UUID
	percent         decimal.Decimal
	balance         decimal.Decimal
	accruals        decimal.Decimal
	date            time.Time
	deadline        time.Time
	deadlineReached bool
}

var _ Account = (*DepositAccount)(nil)

func NewDepositAccount(id AccountID, owner uuid.UUID, percent decimal.Decimal, openDate, deadline time.Time, balance decimal.Decimal) (*DepositAccount, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	if percent.IsNegative() {
		return nil, errValidation("percent", "must not be negative")
	}
	if balance.IsNegative() {
		return nil, errValidation("balance", "must not be negative")
	}
	openDate = midnightUTC(openDate)
	deadline = midnightUTC(deadline)
	if deadline.Before(openDate) {
		return nil, errValidation("deadline", "must not precede the open date")
	}

	return &DepositAccount{
		id:       id,
		owner:    owner,
		percent:  percent,
		balance:  balance,
		date:     openDate,
		deadline: deadline,
	}, nil
}

func (a *DepositAccount) ID() AccountID {
	return a.id
}

func (a *DepositAccount) OwnerID() uuid.UUID {
	return a.owner
}

func (a *DepositAccount) Balance() decimal.Decimal {
	return a.balance
}

func (a *DepositAccount) Limit() decimal.Decimal {
	return a.balance
}

// Percent returns the tiered annual rate fixed at account opening.
func (a *DepositAccount) Percent() decimal.Decimal {
	return a.percent
}

// Accruals returns interest accumulated since the last capitalization.
func (a *DepositAccount) Accruals() decimal.Decimal {
	return a.accruals
}

// Deadline returns the date at which withdrawals unlock.
func (a *DepositAccount) Deadline() time.Time {
	return a.deadline
}

// DeadlineReached reports whether the deposit term has ended.
func (a *DepositAccount) DeadlineReached() bool {
	return a.deadlineReached
}

func (a *DepositAccount) DayChange(lastDayOfMonth bool) {
	a.date = a.date.AddDate(0, 0, 1)
	if !a.date.Before(a.deadline) {
		a.deadlineReached = true
	}

	a.accruals = a.accruals.Add(dailyAccrual(a.balance, a.percent))

	if lastDayOfMonth && !a.deadlineReached {
		a.balance = a.balance.Add(a.accruals)
		a.accruals = decimal.Zero
	}
}

func (a *DepositAccount) WithdrawAllowed(amount decimal.Decimal) (bool, error) {
	if err := checkAmount(amount); err != nil {
		return false, err
	}
	if !a.deadlineReached {
		return false, nil
	}
	return !a.balance.Sub(amount).IsNegative(), nil
}

func (a *DepositAccount) TopUp(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *DepositAccount) Withdraw(amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}
