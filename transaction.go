package ledgergo

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Transaction kinds as reported by Kind, used for logging, metrics
// labels, and statement rows.
const (
	KindTopUp    = "top_up"
	KindWithdraw = "withdraw"
	KindTransfer = "transfer"
)

// Transaction is a reified, reversible money movement. Execute is
// callable at most once; Rollback requires a prior successful Execute,
// is itself at most once, and reverses exactly the balance deltas
// Execute applied.
type Transaction interface {
	ID() snowflake.ID
	Kind() string
	From() Account
	To() Account
	Amount() decimal.Decimal
	Executed() bool

	Execute() error
	Rollback() error
}

// txnState carries the identity and one-shot bookkeeping shared by all
// transaction variants.
type txnState struct {
	id         snowflake.ID
	amount     decimal.Decimal
	executed   bool
	rolledBack bool
}

func newTxnState(id snowflake.ID, amount decimal.Decimal) (txnState, error) {
	if amount.IsNegative() {
		return txnState{}, errValidation("amount", "must not be negative")
	}
	return txnState{id: id, amount: amount}, nil
}

func (t *txnState) ID() snowflake.ID {
	return t.id
}

func (t *txnState) Amount() decimal.Decimal {
	return t.amount
}

func (t *txnState) Executed() bool {
	return t.executed
}

func (t *txnState) guardExecute() error {
	if t.executed {
		return ErrInvalidState{Reason: "transaction already executed"}
	}
	return nil
}

func (t *txnState) guardRollback() error {
	if !t.executed {
		return ErrInvalidState{Reason: "transaction not executed"}
	}
	if t.rolledBack {
		return ErrInvalidState{Reason: "transaction already rolled back"}
	}
	return nil
}

// TopUpTransaction adds money to a single account.
type TopUpTransaction struct {
	txnState
	account Account
}

var _ Transaction = (*TopUpTransaction)(nil)

func NewTopUpTransaction(id snowflake.ID, account Account, amount decimal.Decimal) (*TopUpTransaction, error) {
	if account == nil {
		return nil, errValidation("account", "must not be nil")
	}
	st, err := newTxnState(id, amount)
	if err != nil {
		return nil, err
	}
	return &TopUpTransaction{txnState: st, account: account}, nil
}

func (t *TopUpTransaction) Kind() string {
	return KindTopUp
}

func (t *TopUpTransaction) From() Account {
	return t.account
}

func (t *TopUpTransaction) To() Account {
	return t.account
}

func (t *TopUpTransaction) Execute() error {
	if err := t.guardExecute(); err != nil {
		return err
	}
	if err := t.account.TopUp(t.amount); err != nil {
		return err
	}
	t.executed = true
	return nil
}

func (t *TopUpTransaction) Rollback() error {
	if err := t.guardRollback(); err != nil {
		return err
	}
	allowed, err := t.account.WithdrawAllowed(t.amount)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrInvalidState{Reason: "withdrawal not allowed"}
	}
	if err := t.account.Withdraw(t.amount); err != nil {
		return err
	}
	t.rolledBack = true
	return nil
}

// WithdrawTransaction removes money from a single account.
type WithdrawTransaction struct {
	txnState
	account Account
}

var _ Transaction = (*WithdrawTransaction)(nil)

func NewWithdrawTransaction(id snowflake.ID, account Account, amount decimal.Decimal) (*WithdrawTransaction, error) {
	if account == nil {
		return nil, errValidation("account", "must not be nil")
	}
	st, err := newTxnState(id, amount)
	if err != nil {
		return nil, err
	}
	return &WithdrawTransaction{txnState: st, account: account}, nil
}

func (t *WithdrawTransaction) Kind() string {
	return KindWithdraw
}

func (t *WithdrawTransaction) From() Account {
	return t.account
}

func (t *WithdrawTransaction) To() Account {
	return t.account
}

func (t *WithdrawTransaction) Execute() error {
	if err := t.guardExecute(); err != nil {
		return err
	}
	allowed, err := t.account.WithdrawAllowed(t.amount)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrInvalidState{Reason: "withdrawal not allowed"}
	}
	if err := t.account.Withdraw(t.amount); err != nil {
		return err
	}
	t.executed = true
	return nil
}

func (t *WithdrawTransaction) Rollback() error {
	if err := t.guardRollback(); err != nil {
		return err
	}
	if err := t.account.TopUp(t.amount); err != nil {
		return err
	}
	t.rolledBack = true
	return nil
}

// TransferTransaction moves money between two accounts. The source
// allow-check runs before any mutation so a failed Execute leaves no
// partial state.
type TransferTransaction struct {
	txnState
	from Account
	to   Account
}

var _ Transaction = (*TransferTransaction)(nil)

func NewTransferTransaction(id snowflake.ID, from, to Account, amount decimal.Decimal) (*TransferTransaction, error) {
	if from == nil || to == nil {
		return nil, errValidation("account", "must not be nil")
	}
	st, err := newTxnState(id, amount)
	if err != nil {
		return nil, err
	}
	return &TransferTransaction{txnState: st, from: from, to: to}, nil
}

func (t *TransferTransaction) Kind() string {
	return KindTransfer
}

func (t *TransferTransaction) From() Account {
	return t.from
}

func (t *TransferTransaction) To() Account {
	return t.to
}

func (t *TransferTransaction) Execute() error {
	if err := t.guardExecute(); err != nil {
		return err
	}
	allowed, err := t.from.WithdrawAllowed(t.amount)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrInvalidState{Reason: "withdrawal not allowed"}
	}
	if err := t.from.Withdraw(t.amount); err != nil {
		return err
	}
	if err := t.to.TopUp(t.amount); err != nil {
		return err
	}
	t.executed = true
	return nil
}

func (t *TransferTransaction) Rollback() error {
	if err := t.guardRollback(); err != nil {
		return err
	}
	if err := t.to.Withdraw(t.amount); err != nil {
		return err
	}
	if err := t.from.TopUp(t.amount); err != nil {
		return err
	}
	t.rolledBack = true
	return nil
}
