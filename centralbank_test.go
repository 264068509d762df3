package ledgergo_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/russianZAK/ledgergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentralBankRegisterBank(t *testing.T) {
	t.Run("assigns sequential ids in registration order", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, nil)
		reqrd.Nil(err)

		sber, err := cb.RegisterBank(sberReq())
		reqrd.Nil(err)
		tink := sberReq()
		tink.Name = "Tinkoff"
		second, err := cb.RegisterBank(tink)
		reqrd.Nil(err)

		as.Equal(0, sber.ID())
		as.Equal(1, second.ID())
		as.Len(cb.Banks(), 2)

		got, err := cb.Bank(1)
		reqrd.Nil(err)
		as.Equal("Tinkoff", got.Name())
		_, err = cb.Bank(2)
		as.ErrorAs(err, &ledgergo.ErrNotFound{})
	})

	t.Run("returns an error for an empty bank name", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, nil)
		reqrd.Nil(err)

		req := sberReq()
		req.Name = ""
		_, err = cb.RegisterBank(req)
		as.ErrorAs(err, &ledgergo.ErrValidation{})
	})
}

func TestCentralBankAdvance(t *testing.T) {
	t.Run("returns an error when the target lies in the past", func(tt *testing.T) {
		as := assert.New(tt)
		cb, _ := newTestBank(tt)
		as.ErrorAs(cb.AdvanceTo(clockStart().AddDate(0, 0, -1)), &ledgergo.ErrValidation{})
		as.ErrorAs(cb.AdvanceDays(-1), &ledgergo.ErrValidation{})
	})

	t.Run("capitalizes one month of debit interest over a day walk", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		cb, bank := newTestBank(tt)
		c := registerClient(tt, bank, true)
		acct, err := bank.OpenDebitAccount(c.ID())
		reqrd.Nil(err)
		_, err = bank.TopUp(acct.ID(), d(4000))
		reqrd.Nil(err)

		reqrd.Nil(cb.AdvanceTo(clockStart().AddDate(0, 1, 0)))
		as.Equal(time.Date(2022, time.December, 26, 0, 0, 0, 0, time.UTC), cb.Now())

		// Nov 26..30 accrue at 5% annual on 4000; the Nov 30 tick
		// capitalizes those five days. December accruals stay pending.
		day := oneDayInterest(d(4000), d(5))
		expected := d(4000).Add(day.Mul(d(5)))
		as.True(acct.Balance().Equal(expected), "balance %s != %s", acct.Balance(), expected)

		debit := acct.(*ledgergo.DebitAccount)
		pending := oneDayInterest(expected, d(5)).Mul(d(25))
		as.True(debit.Accruals().Equal(pending), "accruals %s != %s", debit.Accruals(), pending)
	})

	t.Run("detached watchers miss the day ticks", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		cb, bank := newTestBank(tt)
		c := registerClient(tt, bank, true)
		acct, err := bank.OpenDebitAccount(c.ID())
		reqrd.Nil(err)
		_, err = bank.TopUp(acct.ID(), d(4000))
		reqrd.Nil(err)

		cb.Detach(bank)
		reqrd.Nil(cb.AdvanceDays(10))

		as.True(acct.Balance().Equal(d(4000)))
		debit := acct.(*ledgergo.DebitAccount)
		as.True(debit.Accruals().IsZero())
	})
}

func TestCentralBankTransfer(t *testing.T) {
	setup := func(tt *testing.T) (*ledgergo.CentralBank, *ledgergo.Bank, *ledgergo.Bank, ledgergo.Account, ledgergo.Account) {
		reqrd := require.New(tt)
		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, nil)
		reqrd.Nil(err)
		sber, err := cb.RegisterBank(sberReq())
		reqrd.Nil(err)
		tinkReq := sberReq()
		tinkReq.Name = "Tinkoff"
		tink, err := cb.RegisterBank(tinkReq)
		reqrd.Nil(err)

		from := registerClient(tt, sber, true)
		to := registerClient(tt, tink, true)
		fromAcct, err := sber.OpenDebitAccount(from.ID())
		reqrd.Nil(err)
		toAcct, err := tink.OpenDebitAccount(to.ID())
		reqrd.Nil(err)
		_, err = sber.TopUp(fromAcct.ID(), d(5000))
		reqrd.Nil(err)
		return cb, sber, tink, fromAcct, toAcct
	}

	t.Run("moves money across banks and logs at both", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		cb, sber, tink, fromAcct, toAcct := setup(tt)

		txn, err := cb.Transfer(fromAcct.ID(), toAcct.ID(), d(2000))
		reqrd.Nil(err)

		as.True(fromAcct.Balance().Equal(d(3000)))
		as.True(toAcct.Balance().Equal(d(2000)))

		_, err = sber.Transaction(txn.ID())
		as.Nil(err)
		_, err = tink.Transaction(txn.ID())
		as.Nil(err)
	})

	t.Run("applies the source bank's restriction to unverified senders", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, nil)
		reqrd.Nil(err)
		sber, err := cb.RegisterBank(sberReq())
		reqrd.Nil(err)

		sender := registerClient(tt, sber, false)
		receiver := registerClient(tt, sber, true)
		fromAcct, err := sber.OpenDebitAccount(sender.ID())
		reqrd.Nil(err)
		toAcct, err := sber.OpenDebitAccount(receiver.ID())
		reqrd.Nil(err)
		_, err = sber.TopUp(fromAcct.ID(), d(20000))
		reqrd.Nil(err)

		_, err = cb.Transfer(fromAcct.ID(), toAcct.ID(), d(10001))
		as.ErrorAs(err, &ledgergo.ErrPolicyViolation{})
		as.True(fromAcct.Balance().Equal(d(20000)))
	})

	t.Run("rollback reverses the transfer and prunes both logs", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		cb, sber, tink, fromAcct, toAcct := setup(tt)

		txn, err := cb.Transfer(fromAcct.ID(), toAcct.ID(), d(2000))
		reqrd.Nil(err)
		reqrd.Nil(cb.Rollback(txn.ID()))

		as.True(fromAcct.Balance().Equal(d(5000)))
		as.True(toAcct.Balance().IsZero())
		_, err = sber.Transaction(txn.ID())
		as.ErrorAs(err, &ledgergo.ErrNotFound{})
		_, err = tink.Transaction(txn.ID())
		as.ErrorAs(err, &ledgergo.ErrNotFound{})
	})

	t.Run("returns an error for an account of an unknown bank", func(tt *testing.T) {
		as := assert.New(tt)
		cb, _, _, fromAcct, toAcct := setup(tt)

		bad := toAcct.ID()
		bad.BankID = 9
		_, err := cb.Transfer(fromAcct.ID(), bad, d(10))
		as.ErrorAs(err, &ledgergo.ErrNotFound{})
	})
}
