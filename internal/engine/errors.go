package engine

import (
	"errors"
	"fmt"
)

// Reason names a recoverable rule violation shown to the user.
type Reason string

const (
	ReasonPriorityNotSelected     Reason = "PriorityNotSelected"
	ReasonBudgetExceeded          Reason = "BudgetExceeded"
	ReasonCreationCapExceeded     Reason = "CreationCapExceeded"
	ReasonFreebieLimitExceeded    Reason = "FreebieLimitExceeded"
	ReasonXpInsufficientFunds     Reason = "XpInsufficientFunds"
	ReasonXpNonSequentialPurchase Reason = "XpNonSequentialPurchase"
	ReasonUnknownTrait            Reason = "UnknownTrait"
	ReasonOutOfRange              Reason = "OutOfRange"
	ReasonModeLocked              Reason = "ModeLocked"
	ReasonResourceExhausted       Reason = "ResourceExhausted"
	ReasonPhaseIncomplete         Reason = "PhaseIncomplete"
)

var (
	ErrPriorityNotSelected     = errors.New("priority not selected")
	ErrBudgetExceeded          = errors.New("budget exceeded")
	ErrCreationCapExceeded     = errors.New("creation cap exceeded")
	ErrFreebieLimitExceeded    = errors.New("freebie limit exceeded")
	ErrXpInsufficientFunds     = errors.New("not enough experience")
	ErrXpNonSequentialPurchase = errors.New("experience purchases raise a trait by exactly one dot")
	ErrUnknownTrait            = errors.New("unknown trait")
	ErrOutOfRange              = errors.New("value out of range")
	ErrModeLocked              = errors.New("not allowed in the current mode")
	ErrResourceExhausted       = errors.New("resource exhausted")
	ErrPhaseIncomplete         = errors.New("phase incomplete")
)

var sentinels = map[Reason]error{
	ReasonPriorityNotSelected:     ErrPriorityNotSelected,
	ReasonBudgetExceeded:          ErrBudgetExceeded,
	ReasonCreationCapExceeded:     ErrCreationCapExceeded,
	ReasonFreebieLimitExceeded:    ErrFreebieLimitExceeded,
	ReasonXpInsufficientFunds:     ErrXpInsufficientFunds,
	ReasonXpNonSequentialPurchase: ErrXpNonSequentialPurchase,
	ReasonUnknownTrait:            ErrUnknownTrait,
	ReasonOutOfRange:              ErrOutOfRange,
	ReasonModeLocked:              ErrModeLocked,
	ReasonResourceExhausted:       ErrResourceExhausted,
	ReasonPhaseIncomplete:         ErrPhaseIncomplete,
}

// Rejection is returned for every rule violation. State is never mutated
// when a Rejection is returned.
type Rejection struct {
	Reason Reason
	Domain Domain
	Trait  string
	Detail string
}

func reject(reason Reason, d Domain, trait, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Domain: d, Trait: trait, Detail: fmt.Sprintf(format, args...)}
}

func (r *Rejection) Error() string {
	subject := r.Trait
	if subject == "" {
		subject = r.Domain.Label()
	}
	if subject == "" {
		return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", r.Reason, subject, r.Detail)
}

// Unwrap exposes the reason's sentinel to errors.Is.
func (r *Rejection) Unwrap() error {
	return sentinels[r.Reason]
}

// ReasonOf returns the rejection reason of err, or "" when err is not a
// Rejection.
func ReasonOf(err error) Reason {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}
