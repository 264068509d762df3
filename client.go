package ledgergo

import (
	"github.com/google/uuid"
)

// ClientReq carries the registration data for a new client. Address
// and passport are optional; supplying both marks the client verified.
type ClientReq struct {
	Name     string
	Surname  string
	Address  string
	Passport string
}

// Client owns accounts within one bank and receives policy-change
// notifications, delegating their classification to its mediator.
type Client struct {
	id       uuid.UUID
	name     string
	surname  string
	address  string
	passport string
	verified bool

	bankID   int
	mediator Mediator

	accounts []AccountID
	spam     []Notification
	useful   []Notification
}

var _ Observer = (*Client)(nil)

func NewClient(req ClientReq) (*Client, error) {
	if req.Name == "" {
		return nil, errValidation("name", "must not be empty")
	}
	if req.Surname == "" {
		return nil, errValidation("surname", "must not be empty")
	}

	return &Client{
		id:       uuid.New(),
		name:     req.Name,
		surname:  req.Surname,
		address:  req.Address,
		passport: req.Passport,
		verified: req.Address != "" && req.Passport != "",
		bankID:   -1,
	}, nil
}

func (c *Client) ID() uuid.UUID {
	return c.id
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Surname() string {
	return c.surname
}

// Verified reports whether both address and passport were supplied at
// registration. Unverified clients are subject to the bank's
// withdrawal restriction.
func (c *Client) Verified() bool {
	return c.verified
}

// BankID returns the owning bank's id, or -1 before registration.
func (c *Client) BankID() int {
	return c.bankID
}

// Accounts returns the client's account ids in opening order.
func (c *Client) Accounts() []AccountID {
	out := make([]AccountID, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// SpamNotifications returns received notifications classified as spam,
// in arrival order.
func (c *Client) SpamNotifications() []Notification {
	out := make([]Notification, len(c.spam))
	copy(out, c.spam)
	return out
}

// UsefulNotifications returns received notifications classified as
// useful, in arrival order.
func (c *Client) UsefulNotifications() []Notification {
	out := make([]Notification, len(c.useful))
	copy(out, c.useful)
	return out
}

// Update implements Observer by forwarding the event to the bound
// mediator.
func (c *Client) Update(n Notification) error {
	if c.mediator == nil {
		return ErrInvalidState{Reason: "client not registered with a bank"}
	}
	return c.mediator.Notify(c, n)
}

func (c *Client) bind(bankID int, m Mediator) {
	c.bankID = bankID
	c.mediator = m
}

func (c *Client) addAccount(id AccountID) {
	c.accounts = append(c.accounts, id)
}

func (c *Client) fileSpam(n Notification) {
	c.spam = append(c.spam, n)
}

func (c *Client) fileUseful(n Notification) {
	c.useful = append(c.useful, n)
}
