package ledgergo

import (
	"github.com/shopspring/decimal"
)

// PolicyKind names the policy dimension a notification is about. Each
// kind has its own bus instance on the bank.
type PolicyKind string

const (
	PolicyDebitRate             PolicyKind = "debit_rate"
	PolicyCreditCommission      PolicyKind = "credit_commission"
	PolicyCreditLimit           PolicyKind = "credit_limit"
	PolicyUnverifiedRestriction PolicyKind = "unverified_restriction"
	PolicyDepositRate           PolicyKind = "deposit_rate"
)

// DepositTier tags deposit-rate notifications with the balance tier
// whose rate changed.
type DepositTier string

const (
	TierUnder50K  DepositTier = "under_50k"
	TierUnder100K DepositTier = "under_100k"
	Tier100KPlus  DepositTier = "100k_plus"
)

// Notification is the event value pushed through a bus when a bank
// policy changes. It carries both the previous and the new value so
// classification does not depend on when the bank mutated its field.
type Notification struct {
	Kind     PolicyKind
	Tier     DepositTier
	Previous decimal.Decimal
	Value    decimal.Decimal
	Message  string
}

// Class is the mediator's verdict on a notification.
type Class string

const (
	ClassUseful Class = "useful"
	ClassSpam   Class = "spam"
)

// Classify applies one uniform rule across all policy dimensions: a
// change is useful when it does not disadvantage the holder. Rate,
// limit, and restriction increases are useful; commission increases
// are spam. Ties classify as useful everywhere. A deposit-rate event
// is judged once, for its tagged tier only.
func Classify(n Notification) Class {
	adverse := n.Value.LessThan(n.Previous)
	if n.Kind == PolicyCreditCommission {
		adverse = n.Value.GreaterThan(n.Previous)
	}
	if adverse {
		return ClassSpam
	}
	return ClassUseful
}

//go:generate mockgen -source=notification.go -destination=mocks/notification.go -package=mocks

// Observer receives notifications fanned out by an Aggregator.
type Observer interface {
	Update(n Notification) error
}

// Mediator files a notification into exactly one of the client's spam
// or useful lists.
type Mediator interface {
	Notify(c *Client, n Notification) error
}

// Aggregator is a publish/subscribe channel for one policy dimension.
type Aggregator struct {
	observers []Observer
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Subscribe(o Observer) error {
	if o == nil {
		return errValidation("observer", "must not be nil")
	}
	a.observers = append(a.observers, o)
	return nil
}

func (a *Aggregator) Unsubscribe(o Observer) error {
	if o == nil {
		return errValidation("observer", "must not be nil")
	}
	for i, sub := range a.observers {
		if sub == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return nil
		}
	}
	return nil
}

// Notify pushes n to every subscriber. The subscriber list is
// snapshotted first so a subscription made during fan-out does not
// receive the in-flight event.
func (a *Aggregator) Notify(n Notification) error {
	snapshot := make([]Observer, len(a.observers))
	copy(snapshot, a.observers)
	for _, o := range snapshot {
		if err := o.Update(n); err != nil {
			return err
		}
	}
	return nil
}

// ClientMediator is the default Mediator: it classifies the event and
// appends it to the matching client list, counting the verdict when a
// metrics collector is attached.
type ClientMediator struct {
	metrics *Metrics
}

var _ Mediator = (*ClientMediator)(nil)

func NewClientMediator(metrics *Metrics) *ClientMediator {
	return &ClientMediator{metrics: metrics}
}

func (m *ClientMediator) Notify(c *Client, n Notification) error {
	if c == nil {
		return errValidation("client", "must not be nil")
	}

	class := Classify(n)
	switch class {
	case ClassUseful:
		c.fileUseful(n)
	default:
		c.fileSpam(n)
	}
	m.metrics.observeNotification(n.Kind, class)
	return nil
}
