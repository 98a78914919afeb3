package errs

import (
	"errors"
	"fmt"
)

// Domain kinds. A DomainError unwraps to exactly one of them.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrBlacklisted        = errors.New("blacklisted")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrOrderNotBiddable   = errors.New("order not biddable")
	ErrNoSuchBid          = errors.New("no such bid")
	ErrAlreadyAdjudicated = errors.New("already adjudicated")
	ErrAlreadyRated       = errors.New("already rated")
	ErrAlreadyFiled       = errors.New("already filed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageFailure     = errors.New("storage failure")
)

// DomainError is a rule violation raised by the engine. Kind is one of the
// domain sentinels above; Detail is a human-readable explanation.
type DomainError struct {
	Kind   error
	Detail string
	Cause  error
}

func newDomainError(kind error, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Detail: sanitize(fmt.Sprintf(format, args...))}
}

func (e *DomainError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewInsufficientFundsError(required, available any) *DomainError {
	return newDomainError(ErrInsufficientFunds, "required %v, available %v", required, available)
}

func NewBlacklistedError(userID any) *DomainError {
	return newDomainError(ErrBlacklisted, "user %v is blacklisted", userID)
}

func NewInvalidTransitionError(from, to any) *DomainError {
	return newDomainError(ErrInvalidTransition, "%v -> %v is not allowed", from, to)
}

func NewInvalidTransitionErrorWithReason(from, to any, reason string) *DomainError {
	return newDomainError(ErrInvalidTransition, "%v -> %v is not allowed: %s", from, to, reason)
}

func NewOrderNotBiddableError(orderID, status any) *DomainError {
	return newDomainError(ErrOrderNotBiddable, "order %v is %v", orderID, status)
}

func NewNoSuchBidError(orderID, bidID any) *DomainError {
	return newDomainError(ErrNoSuchBid, "bid %v is not active on order %v", bidID, orderID)
}

func NewAlreadyAdjudicatedError(feedbackID any) *DomainError {
	return newDomainError(ErrAlreadyAdjudicated, "feedback %v", feedbackID)
}

func NewAlreadyRatedError(orderID any) *DomainError {
	return newDomainError(ErrAlreadyRated, "order %v", orderID)
}

func NewAlreadyFiledError(filerID, orderID any) *DomainError {
	return newDomainError(ErrAlreadyFiled, "user %v already filed feedback on order %v", filerID, orderID)
}

func NewUnauthorizedError(actorID any, operation string) *DomainError {
	return newDomainError(ErrUnauthorized, "actor %v may not %s", actorID, operation)
}

func NewStorageFailureError(entity string, cause error) *DomainError {
	e := newDomainError(ErrStorageFailure, "%s could not be restored", entity)
	e.Cause = cause
	return e
}
