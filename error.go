package ledgergo

import (
	"fmt"
)

// ErrValidation is returned when an operation is rejected before any
// state change because of malformed or out-of-range input.
type ErrValidation struct {
	Fields map[string]string
}

func (e ErrValidation) Error() string {
	return fmt.Sprintf("missing/invalid params: %v", e.Fields)
}

func errValidation(field, reason string) ErrValidation {
	return ErrValidation{Fields: map[string]string{field: reason}}
}

// ErrNotFound is returned when a client, account, or transaction is
// addressed through a bank or central bank that does not own it.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s `%s` not found", e.Kind, e.ID)
}

// ErrInvalidState is returned when an operation is legal in general but
// not in the entity's current state, e.g. executing a transaction twice
// or withdrawing past a deposit lock.
type ErrInvalidState struct {
	Reason string
}

func (e ErrInvalidState) Error() string {
	return e.Reason
}

// ErrPolicyViolation is returned when an operation breaches a bank
// policy, e.g. an unverified customer exceeding the withdrawal
// restriction. The offending transaction is never constructed.
type ErrPolicyViolation struct {
	Reason string
}

func (e ErrPolicyViolation) Error() string {
	return e.Reason
}
