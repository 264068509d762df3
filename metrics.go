package ledgergo

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an optional collector for the ledger engine. A nil
// *Metrics is valid everywhere; every observe method no-ops on nil so
// the core runs without observability wired in.
type Metrics struct {
	txnExecuted   *prometheus.CounterVec
	txnRolledBack *prometheus.CounterVec
	accountsOpen  *prometheus.CounterVec
	notifications *prometheus.CounterVec
	daysAdvanced  prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		txnExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_executed_total",
			Help:      "Transactions executed, by kind.",
		}, []string{"kind"}),
		txnRolledBack: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_rolled_back_total",
			Help:      "Transactions rolled back, by kind.",
		}, []string{"kind"}),
		accountsOpen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_opened_total",
			Help:      "Accounts opened, by variant.",
		}, []string{"variant"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Policy-change notifications delivered, by kind and verdict.",
		}, []string{"kind", "class"}),
		daysAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_advanced_total",
			Help:      "Simulated days the central bank clock has advanced.",
		}),
	}
}

// Register registers all collectors on reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.txnExecuted,
		m.txnRolledBack,
		m.accountsOpen,
		m.notifications,
		m.daysAdvanced,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeTxn(kind string) {
	if m == nil {
		return
	}
	m.txnExecuted.WithLabelValues(kind).Inc()
}

func (m *Metrics) observeRollback(kind string) {
	if m == nil {
		return
	}
	m.txnRolledBack.WithLabelValues(kind).Inc()
}

func (m *Metrics) observeAccount(variant string) {
	if m == nil {
		return
	}
	m.accountsOpen.WithLabelValues(variant).Inc()
}

func (m *Metrics) observeNotification(kind PolicyKind, class Class) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(string(kind), string(class)).Inc()
}

func (m *Metrics) observeDay() {
	if m == nil {
		return
	}
	m.daysAdvanced.Inc()
}
