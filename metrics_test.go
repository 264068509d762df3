package ledgergo_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/russianZAK/ledgergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("registers and counts engine activity", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		metrics := ledgergo.NewMetrics("ledgergo")
		reg := prometheus.NewRegistry()
		reqrd.Nil(metrics.Register(reg))

		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, metrics)
		reqrd.Nil(err)
		bank, err := cb.RegisterBank(sberReq())
		reqrd.Nil(err)
		c := registerClient(tt, bank, true)
		acct, err := bank.OpenDebitAccount(c.ID())
		reqrd.Nil(err)
		_, err = bank.TopUp(acct.ID(), d(100))
		reqrd.Nil(err)
		reqrd.Nil(cb.AdvanceDays(1))

		families, err := reg.Gather()
		reqrd.Nil(err)
		got := map[string]float64{}
		for _, mf := range families {
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			got[mf.GetName()] = total
		}
		as.Equal(float64(1), got["ledgergo_accounts_opened_total"])
		as.Equal(float64(1), got["ledgergo_transactions_executed_total"])
		as.Equal(float64(1), got["ledgergo_days_advanced_total"])
	})

	t.Run("a nil collector is a no-op", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		log := zerolog.Nop()
		cb, err := ledgergo.NewCentralBank(clockStart(), log, nil)
		reqrd.Nil(err)
		bank, err := cb.RegisterBank(sberReq())
		reqrd.Nil(err)
		c := registerClient(tt, bank, true)
		acct, err := bank.OpenDebitAccount(c.ID())
		reqrd.Nil(err)
		_, err = bank.TopUp(acct.ID(), d(100))
		as.Nil(err)
	})
}
