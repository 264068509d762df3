package ledgergo_test

import (
	"testing"

	"github.com/russianZAK/ledgergo"
	"github.com/russianZAK/ledgergo/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		n    ledgergo.Notification
		want ledgergo.Class
	}{
		{
			name: "debit rate increase is useful",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: d(6)},
			want: ledgergo.ClassUseful,
		},
		{
			name: "debit rate cut is spam",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: d(4)},
			want: ledgergo.ClassSpam,
		},
		{
			name: "unchanged value is useful",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: d(5)},
			want: ledgergo.ClassUseful,
		},
		{
			name: "commission cut is useful",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyCreditCommission, Previous: d(400), Value: d(300)},
			want: ledgergo.ClassUseful,
		},
		{
			name: "commission increase is spam",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyCreditCommission, Previous: d(400), Value: d(500)},
			want: ledgergo.ClassSpam,
		},
		{
			name: "credit limit increase is useful",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyCreditLimit, Previous: d(50000), Value: d(60000)},
			want: ledgergo.ClassUseful,
		},
		{
			name: "restriction cut is spam",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyUnverifiedRestriction, Previous: d(10000), Value: d(5000)},
			want: ledgergo.ClassSpam,
		},
		{
			name: "deposit tier rate increase is useful",
			n:    ledgergo.Notification{Kind: ledgergo.PolicyDepositRate, Tier: ledgergo.Tier100KPlus, Previous: d(5), Value: d(7)},
			want: ledgergo.ClassUseful,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			assert.Equal(tt, tc.want, ledgergo.Classify(tc.n))
		})
	}
}

func TestAggregator(t *testing.T) {
	event := ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: d(6)}

	t.Run("returns an error when subscribing nil", func(tt *testing.T) {
		as := assert.New(tt)
		agg := ledgergo.NewAggregator()
		as.ErrorAs(agg.Subscribe(nil), &ledgergo.ErrValidation{})
	})

	t.Run("fans an event out to every subscriber", func(tt *testing.T) {
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		agg := ledgergo.NewAggregator()

		first := mocks.NewMockObserver(ctrl)
		second := mocks.NewMockObserver(ctrl)
		reqrd.Nil(agg.Subscribe(first))
		reqrd.Nil(agg.Subscribe(second))

		first.EXPECT().Update(event).Return(nil)
		second.EXPECT().Update(event).Return(nil)
		reqrd.Nil(agg.Notify(event))
	})

	t.Run("stops fan-out on the first observer error", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		agg := ledgergo.NewAggregator()

		first := mocks.NewMockObserver(ctrl)
		second := mocks.NewMockObserver(ctrl)
		reqrd.Nil(agg.Subscribe(first))
		reqrd.Nil(agg.Subscribe(second))

		first.EXPECT().Update(event).Return(ledgergo.ErrInvalidState{Reason: "client not registered with a bank"})
		as.ErrorAs(agg.Notify(event), &ledgergo.ErrInvalidState{})
	})

	t.Run("unsubscribed observers receive nothing", func(tt *testing.T) {
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		agg := ledgergo.NewAggregator()

		obs := mocks.NewMockObserver(ctrl)
		reqrd.Nil(agg.Subscribe(obs))
		reqrd.Nil(agg.Unsubscribe(obs))

		reqrd.Nil(agg.Notify(event))
	})
}

func TestClientUpdate(t *testing.T) {
	t.Run("returns an error before bank registration", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		c, err := ledgergo.NewClient(ledgergo.ClientReq{Name: "Ivan", Surname: "Petrov"})
		reqrd.Nil(err)

		err = c.Update(ledgergo.Notification{Kind: ledgergo.PolicyDebitRate})
		as.ErrorAs(err, &ledgergo.ErrInvalidState{})
	})
}

func TestClientMediator(t *testing.T) {
	t.Run("returns an error when the client is nil", func(tt *testing.T) {
		as := assert.New(tt)
		m := ledgergo.NewClientMediator(nil)
		err := m.Notify(nil, ledgergo.Notification{Kind: ledgergo.PolicyDebitRate})
		as.ErrorAs(err, &ledgergo.ErrValidation{})
	})

	t.Run("files each event into exactly one list", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		c, err := ledgergo.NewClient(ledgergo.ClientReq{Name: "Ivan", Surname: "Petrov"})
		reqrd.Nil(err)
		m := ledgergo.NewClientMediator(nil)

		useful := ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: d(6)}
		spam := ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(6), Value: d(5)}
		reqrd.Nil(m.Notify(c, useful))
		reqrd.Nil(m.Notify(c, spam))

		as.Equal([]ledgergo.Notification{useful}, c.UsefulNotifications())
		as.Equal([]ledgergo.Notification{spam}, c.SpamNotifications())
	})
}

func TestClassifyDecimalPrecision(t *testing.T) {
	t.Run("compares by numeric value rather than representation", func(tt *testing.T) {
		as := assert.New(tt)
		five, err := decimal.NewFromString("5.00")
		require.Nil(tt, err)
		n := ledgergo.Notification{Kind: ledgergo.PolicyDebitRate, Previous: d(5), Value: five}
		as.Equal(ledgergo.ClassUseful, ledgergo.Classify(n))
	})
}
