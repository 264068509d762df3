package ledgergo

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	tierFiftyThousand   = decimal.NewFromInt(50000)
	tierHundredThousand = decimal.NewFromInt(100000)
)

// BankReq carries the name and the seven policy decimals a new bank is
// created with.
type BankReq struct {
	Name                  string
	DebitRate             decimal.Decimal
	DepositRateUnder50K   decimal.Decimal
	DepositRateUnder100K  decimal.Decimal
	DepositRate100KPlus   decimal.Decimal
	CreditCommission      decimal.Decimal
	UnverifiedRestriction decimal.Decimal
	CreditLimit           decimal.Decimal
}

func (r BankReq) validate() error {
	if r.Name == "" {
		return errValidation("name", "must not be empty")
	}
	fields := map[string]decimal.Decimal{
		"debitRate":             r.DebitRate,
		"depositRateUnder50K":   r.DepositRateUnder50K,
		"depositRateUnder100K":  r.DepositRateUnder100K,
		"depositRate100KPlus":   r.DepositRate100KPlus,
		"creditCommission":      r.CreditCommission,
		"unverifiedRestriction": r.UnverifiedRestriction,
		"creditLimit":           r.CreditLimit,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return errValidation(name, "must not be negative")
		}
	}
	return nil
}

// Bank owns clients, accounts, a transaction log, and one notification
// bus per policy dimension. All mutation is synchronous; callers hold
// exclusive access.
type Bank struct {
	name string
	id   int

	debitRate             decimal.Decimal
	depositRateUnder50K   decimal.Decimal
	depositRateUnder100K  decimal.Decimal
	depositRate100KPlus   decimal.Decimal
	creditCommission      decimal.Decimal
	unverifiedRestriction decimal.Decimal
	creditLimit           decimal.Decimal

	clients      []*Client
	accounts     []Account
	transactions []Transaction

	debitRateBus   *Aggregator
	commissionBus  *Aggregator
	creditLimitBus *Aggregator
	restrictionBus *Aggregator
	depositRateBus *Aggregator

	clock   *Clock
	node    *snowflake.Node
	log     zerolog.Logger
	metrics *Metrics
}

var _ Watcher = (*Bank)(nil)

func newBank(id int, req BankReq, clock *Clock, node *snowflake.Node, log zerolog.Logger, metrics *Metrics) (*Bank, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	return &Bank{
		name:                  req.Name,
		id:                    id,
		debitRate:             req.DebitRate,
		depositRateUnder50K:   req.DepositRateUnder50K,
		depositRateUnder100K:  req.DepositRateUnder100K,
		depositRate100KPlus:   req.DepositRate100KPlus,
		creditCommission:      req.CreditCommission,
		unverifiedRestriction: req.UnverifiedRestriction,
		creditLimit:           req.CreditLimit,
		debitRateBus:          NewAggregator(),
		commissionBus:         NewAggregator(),
		creditLimitBus:        NewAggregator(),
		restrictionBus:        NewAggregator(),
		depositRateBus:        NewAggregator(),
		clock:                 clock,
		node:                  node,
		log:                   log.With().Int("bank", id).Str("name", req.Name).Logger(),
		metrics:               metrics,
	}, nil
}

func (b *Bank) ID() int {
	return b.id
}

func (b *Bank) Name() string {
	return b.name
}

func (b *Bank) DebitRate() decimal.Decimal {
	return b.debitRate
}

func (b *Bank) CreditCommission() decimal.Decimal {
	return b.creditCommission
}

func (b *Bank) CreditLimit() decimal.Decimal {
	return b.creditLimit
}

func (b *Bank) UnverifiedRestriction() decimal.Decimal {
	return b.unverifiedRestriction
}

// DepositRate returns the current rate for the given balance tier.
func (b *Bank) DepositRate(tier DepositTier) (decimal.Decimal, error) {
	switch tier {
	case TierUnder50K:
		return b.depositRateUnder50K, nil
	case TierUnder100K:
		return b.depositRateUnder100K, nil
	case Tier100KPlus:
		return b.depositRate100KPlus, nil
	}
	return decimal.Zero, errValidation("tier", "unknown deposit tier")
}

// Client resolves a registered client by id.
func (b *Bank) Client(id uuid.UUID) (*Client, error) {
	for _, c := range b.clients {
		if c.id == id {
			return c, nil
		}
	}
	return nil, ErrNotFound{Kind: "client", ID: id.String()}
}

// Account resolves an owned account by id.
func (b *Bank) Account(id AccountID) (Account, error) {
	for _, a := range b.accounts {
		if a.ID() == id {
			return a, nil
		}
	}
	return nil, ErrNotFound{Kind: "account", ID: id.String()}
}

// Transaction resolves a logged transaction by id.
func (b *Bank) Transaction(id snowflake.ID) (Transaction, error) {
	for _, t := range b.transactions {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, ErrNotFound{Kind: "transaction", ID: id.String()}
}

// Transactions returns the log in append order.
func (b *Bank) Transactions() []Transaction {
	out := make([]Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// AddClient registers a client with the bank. Unverified clients are
// subscribed to the withdrawal-restriction bus so they learn when the
// restriction applying to them moves.
func (b *Bank) AddClient(c *Client) error {
	if c == nil {
		return errValidation("client", "must not be nil")
	}
	if c.bankID >= 0 {
		return ErrInvalidState{Reason: "client already registered with a bank"}
	}

	if !c.Verified() {
		if err := b.restrictionBus.Subscribe(c); err != nil {
			return err
		}
	}
	c.bind(b.id, NewClientMediator(b.metrics))
	b.clients = append(b.clients, c)
	b.log.Info().Str("client", c.id.String()).Bool("verified", c.Verified()).Msg("client registered")
	return nil
}

// OpenDebitAccount opens a debit account for a registered client at
// the bank's current debit rate.
func (b *Bank) OpenDebitAccount(clientID uuid.UUID) (Account, error) {
	c, err := b.Client(clientID)
	if err != nil {
		return nil, err
	}

	acct, err := NewDebitAccount(b.newAccountID(), c.id, b.debitRate)
	if err != nil {
		return nil, err
	}
	if err := b.debitRateBus.Subscribe(c); err != nil {
		return nil, err
	}
	b.adopt(c, acct, "debit")
	return acct, nil
}

// OpenCreditAccount opens a credit account for a registered client at
// the bank's current credit limit and commission.
func (b *Bank) OpenCreditAccount(clientID uuid.UUID) (Account, error) {
	c, err := b.Client(clientID)
	if err != nil {
		return nil, err
	}

	acct, err := NewCreditAccount(b.newAccountID(), c.id, b.creditLimit, b.creditCommission)
	if err != nil {
		return nil, err
	}
	if err := b.commissionBus.Subscribe(c); err != nil {
		return nil, err
	}
	if err := b.creditLimitBus.Subscribe(c); err != nil {
		return nil, err
	}
	b.adopt(c, acct, "credit")
	return acct, nil
}

// OpenDepositAccount opens a deposit of amount locked until deadline.
// The rate tier is selected by the opening amount.
func (b *Bank) OpenDepositAccount(clientID uuid.UUID, amount decimal.Decimal, deadline time.Time) (Account, error) {
	c, err := b.Client(clientID)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, errValidation("amount", "must not be negative")
	}

	percent, _ := b.DepositRate(depositTierFor(amount))
	acct, err := NewDepositAccount(b.newAccountID(), c.id, percent, b.clock.Now(), deadline, amount)
	if err != nil {
		return nil, err
	}
	if err := b.depositRateBus.Subscribe(c); err != nil {
		return nil, err
	}
	b.adopt(c, acct, "deposit")
	return acct, nil
}

func depositTierFor(amount decimal.Decimal) DepositTier {
	switch {
	case amount.LessThan(tierFiftyThousand):
		return TierUnder50K
	case amount.LessThan(tierHundredThousand):
		return TierUnder100K
	default:
		return Tier100KPlus
	}
}

func (b *Bank) newAccountID() AccountID {
	return AccountID{BankID: b.id, ID: uuid.New()}
}

func (b *Bank) adopt(c *Client, acct Account, variant string) {
	c.addAccount(acct.ID())
	b.accounts = append(b.accounts, acct)
	b.metrics.observeAccount(variant)
	b.log.Info().
		Str("account", acct.ID().String()).
		Str("client", c.id.String()).
		Str("variant", variant).
		Msg("account opened")
}

// TopUp executes and logs a top-up transaction against an owned
// account.
func (b *Bank) TopUp(accountID AccountID, amount decimal.Decimal) (Transaction, error) {
	if amount.IsNegative() {
		return nil, errValidation("amount", "must not be negative")
	}
	acct, err := b.Account(accountID)
	if err != nil {
		return nil, err
	}

	txn, err := NewTopUpTransaction(b.node.Generate(), acct, amount)
	if err != nil {
		return nil, err
	}
	return b.run(txn)
}

// Withdraw executes and logs a withdrawal, enforcing the unverified
// customer restriction on the account owner.
func (b *Bank) Withdraw(accountID AccountID, amount decimal.Decimal) (Transaction, error) {
	if amount.IsNegative() {
		return nil, errValidation("amount", "must not be negative")
	}
	acct, err := b.Account(accountID)
	if err != nil {
		return nil, err
	}
	if err := b.checkRestriction(acct, amount); err != nil {
		return nil, err
	}

	txn, err := NewWithdrawTransaction(b.node.Generate(), acct, amount)
	if err != nil {
		return nil, err
	}
	return b.run(txn)
}

// Transfer executes and logs a transfer between two accounts of this
// bank. Cross-bank transfers are orchestrated by the central bank.
func (b *Bank) Transfer(fromID, toID AccountID, amount decimal.Decimal) (Transaction, error) {
	if amount.IsNegative() {
		return nil, errValidation("amount", "must not be negative")
	}
	from, err := b.Account(fromID)
	if err != nil {
		return nil, err
	}
	to, err := b.Account(toID)
	if err != nil {
		return nil, err
	}
	if err := b.checkRestriction(from, amount); err != nil {
		return nil, err
	}

	txn, err := NewTransferTransaction(b.node.Generate(), from, to, amount)
	if err != nil {
		return nil, err
	}
	return b.run(txn)
}

// checkRestriction rejects withdrawals and transfers above the bank's
// restriction threshold when the source owner is unverified. Equality
// passes.
func (b *Bank) checkRestriction(acct Account, amount decimal.Decimal) error {
	owner, err := b.Client(acct.OwnerID())
	if err != nil {
		return err
	}
	if !owner.Verified() && amount.GreaterThan(b.unverifiedRestriction) {
		return ErrPolicyViolation{Reason: "amount exceeds the restriction for unverified customers"}
	}
	return nil
}

func (b *Bank) run(txn Transaction) (Transaction, error) {
	if err := txn.Execute(); err != nil {
		return nil, err
	}
	b.transactions = append(b.transactions, txn)
	b.metrics.observeTxn(txn.Kind())
	b.log.Info().
		Int64("txn", txn.ID().Int64()).
		Str("kind", txn.Kind()).
		Str("amount", txn.Amount().String()).
		Msg("transaction executed")
	return txn, nil
}

// Rollback reverses a logged transaction. The entry stays in the log;
// removal is the caller's responsibility via DeleteTransaction.
func (b *Bank) Rollback(txnID snowflake.ID) error {
	txn, err := b.Transaction(txnID)
	if err != nil {
		return err
	}
	if err := txn.Rollback(); err != nil {
		return err
	}
	b.metrics.observeRollback(txn.Kind())
	b.log.Info().Int64("txn", txn.ID().Int64()).Str("kind", txn.Kind()).Msg("transaction rolled back")
	return nil
}

// DeleteTransaction removes a transaction from the log.
func (b *Bank) DeleteTransaction(txnID snowflake.ID) error {
	for i, t := range b.transactions {
		if t.ID() == txnID {
			b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound{Kind: "transaction", ID: txnID.String()}
}

// recordTransfer logs a transfer executed by the central bank.
func (b *Bank) recordTransfer(txn Transaction) error {
	if txn == nil {
		return errValidation("transaction", "must not be nil")
	}
	b.transactions = append(b.transactions, txn)
	return nil
}

// SetDebitRate sets the debit rate and notifies subscribed clients.
func (b *Bank) SetDebitRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errValidation("debitRate", "must not be negative")
	}
	prev := b.debitRate
	b.debitRate = rate
	return b.publish(b.debitRateBus, Notification{
		Kind:     PolicyDebitRate,
		Previous: prev,
		Value:    rate,
		Message:  rate.String() + " - new percent for debit accounts",
	})
}

// SetCreditCommission sets the per-day credit commission and notifies
// subscribed clients.
func (b *Bank) SetCreditCommission(commission decimal.Decimal) error {
	if commission.IsNegative() {
		return errValidation("creditCommission", "must not be negative")
	}
	prev := b.creditCommission
	b.creditCommission = commission
	return b.publish(b.commissionBus, Notification{
		Kind:     PolicyCreditCommission,
		Previous: prev,
		Value:    commission,
		Message:  commission.String() + " - new commission for credit accounts",
	})
}

// SetCreditLimit sets the credit limit and notifies subscribed
// clients.
func (b *Bank) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return errValidation("creditLimit", "must not be negative")
	}
	prev := b.creditLimit
	b.creditLimit = limit
	return b.publish(b.creditLimitBus, Notification{
		Kind:     PolicyCreditLimit,
		Previous: prev,
		Value:    limit,
		Message:  limit.String() + " - new credit limit for credit accounts",
	})
}

// SetUnverifiedRestriction sets the withdrawal threshold for
// unverified customers and notifies subscribed clients.
func (b *Bank) SetUnverifiedRestriction(restriction decimal.Decimal) error {
	if restriction.IsNegative() {
		return errValidation("unverifiedRestriction", "must not be negative")
	}
	prev := b.unverifiedRestriction
	b.unverifiedRestriction = restriction
	return b.publish(b.restrictionBus, Notification{
		Kind:     PolicyUnverifiedRestriction,
		Previous: prev,
		Value:    restriction,
		Message:  restriction.String() + " - new restriction for unverified clients",
	})
}

// SetDepositRate sets the rate of one balance tier and notifies
// subscribed clients with a tier-tagged event.
func (b *Bank) SetDepositRate(tier DepositTier, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errValidation("depositRate", "must not be negative")
	}
	prev, err := b.DepositRate(tier)
	if err != nil {
		return err
	}
	switch tier {
	case TierUnder50K:
		b.depositRateUnder50K = rate
	case TierUnder100K:
		b.depositRateUnder100K = rate
	case Tier100KPlus:
		b.depositRate100KPlus = rate
	}
	return b.publish(b.depositRateBus, Notification{
		Kind:     PolicyDepositRate,
		Tier:     tier,
		Previous: prev,
		Value:    rate,
		Message:  rate.String() + " - new percent for " + string(tier) + " deposit accounts",
	})
}

func (b *Bank) publish(bus *Aggregator, n Notification) error {
	b.log.Info().
		Str("policy", string(n.Kind)).
		Str("previous", n.Previous.String()).
		Str("value", n.Value.String()).
		Msg("policy changed")
	return bus.Notify(n)
}

// UpdateDate applies one simulated day to every owned account.
// Implements Watcher for the central bank's day ticks.
func (b *Bank) UpdateDate(t time.Time) {
	last := isLastDayOfMonth(t)
	for _, acct := range b.accounts {
		acct.DayChange(last)
	}
}
