package ledgergo

import (
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Watcher is ticked once per simulated day with the date being applied.
type Watcher interface {
	UpdateDate(t time.Time)
}

// CentralBank owns the simulation clock and the bank registry. It is
// the only place banks are created, cross-bank transfers are executed,
// and time moves.
type CentralBank struct {
	clock    *Clock
	node     *snowflake.Node
	banks    []*Bank
	watchers []Watcher

	log     zerolog.Logger
	metrics *Metrics
}

func NewCentralBank(start time.Time, log zerolog.Logger, metrics *Metrics) (*CentralBank, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}

	return &CentralBank{
		clock:   NewClock(start),
		node:    node,
		log:     log.With().Str("component", "central_bank").Logger(),
		metrics: metrics,
	}, nil
}

// Now returns the current simulated date.
func (cb *CentralBank) Now() time.Time {
	return cb.clock.Now()
}

// RegisterBank creates a bank under the central bank's clock and id
// node and attaches it to the day tick.
func (cb *CentralBank) RegisterBank(req BankReq) (*Bank, error) {
	b, err := newBank(len(cb.banks), req, cb.clock, cb.node, cb.log, cb.metrics)
	if err != nil {
		return nil, err
	}
	cb.banks = append(cb.banks, b)
	cb.Attach(b)
	cb.log.Info().Int("bank", b.id).Str("name", b.name).Msg("bank registered")
	return b, nil
}

// Bank resolves a registered bank by id.
func (cb *CentralBank) Bank(id int) (*Bank, error) {
	if id < 0 || id >= len(cb.banks) {
		return nil, ErrNotFound{Kind: "bank", ID: strconv.Itoa(id)}
	}
	return cb.banks[id], nil
}

// Banks returns the registry in registration order.
func (cb *CentralBank) Banks() []*Bank {
	out := make([]*Bank, len(cb.banks))
	copy(out, cb.banks)
	return out
}

// Transfer moves money between accounts of any two registered banks.
// The source bank's unverified restriction applies; the transaction is
// logged at the source bank and, when different, at the destination
// bank as well.
func (cb *CentralBank) Transfer(fromID, toID AccountID, amount decimal.Decimal) (Transaction, error) {
	if amount.IsNegative() {
		return nil, errValidation("amount", "must not be negative")
	}

	fromBank, err := cb.Bank(fromID.BankID)
	if err != nil {
		return nil, err
	}
	toBank, err := cb.Bank(toID.BankID)
	if err != nil {
		return nil, err
	}
	from, err := fromBank.Account(fromID)
	if err != nil {
		return nil, err
	}
	to, err := toBank.Account(toID)
	if err != nil {
		return nil, err
	}
	if err := fromBank.checkRestriction(from, amount); err != nil {
		return nil, err
	}

	txn, err := NewTransferTransaction(cb.node.Generate(), from, to, amount)
	if err != nil {
		return nil, err
	}
	if err := txn.Execute(); err != nil {
		return nil, err
	}

	if err := fromBank.recordTransfer(txn); err != nil {
		return nil, err
	}
	if toBank != fromBank {
		if err := toBank.recordTransfer(txn); err != nil {
			return nil, err
		}
	}
	cb.metrics.observeTxn(txn.Kind())
	cb.log.Info().
		Int64("txn", txn.ID().Int64()).
		Str("from", fromID.String()).
		Str("to", toID.String()).
		Str("amount", amount.String()).
		Msg("cross-bank transfer executed")
	return txn, nil
}

// Rollback reverses a transaction found in any bank's log and prunes
// the entry from every log that carries it.
func (cb *CentralBank) Rollback(txnID snowflake.ID) error {
	var txn Transaction
	for _, b := range cb.banks {
		if t, err := b.Transaction(txnID); err == nil {
			txn = t
			break
		}
	}
	if txn == nil {
		return ErrNotFound{Kind: "transaction", ID: txnID.String()}
	}

	if err := txn.Rollback(); err != nil {
		return err
	}
	for _, b := range cb.banks {
		_ = b.DeleteTransaction(txnID)
	}
	cb.metrics.observeRollback(txn.Kind())
	cb.log.Info().Int64("txn", txn.ID().Int64()).Str("kind", txn.Kind()).Msg("transaction rolled back")
	return nil
}

// Attach subscribes a watcher to the day tick.
func (cb *CentralBank) Attach(w Watcher) {
	if w == nil {
		return
	}
	cb.watchers = append(cb.watchers, w)
}

// Detach unsubscribes a watcher.
func (cb *CentralBank) Detach(w Watcher) {
	for i, sub := range cb.watchers {
		if sub == w {
			cb.watchers = append(cb.watchers[:i], cb.watchers[i+1:]...)
			return
		}
	}
}

// AdvanceTo walks the clock one day at a time up to target. Each day
// ticks every watcher with the date being applied before the clock
// moves, so month-end capitalization observes the closing date.
func (cb *CentralBank) AdvanceTo(target time.Time) error {
	target = midnightUTC(target)
	if target.Before(cb.clock.Now()) {
		return errValidation("target", "must not be before the current date")
	}

	for cb.clock.Now().Before(target) {
		day := cb.clock.Now()
		for _, w := range cb.watchers {
			w.UpdateDate(day)
		}
		cb.clock.AdvanceDay()
		cb.metrics.observeDay()
	}
	cb.log.Info().Time("date", cb.clock.Now()).Msg("clock advanced")
	return nil
}

// AdvanceDays walks the clock n days forward.
func (cb *CentralBank) AdvanceDays(n int) error {
	if n < 0 {
		return errValidation("days", "must not be negative")
	}
	return cb.AdvanceTo(cb.clock.Now().AddDate(0, 0, n))
}
