package promo

import "errors"

var (
	ErrNoSession       = errors.New("no active session")
	ErrInvalidAddress  = errors.New("invalid token address")
	ErrTokenNotFound   = errors.New("token not found")
	ErrLookupFailed    = errors.New("token lookup failed")
	ErrUnknownPackage  = errors.New("unknown package")
	ErrDuplicateTx     = errors.New("transaction already used")
	ErrPaymentPending  = errors.New("transaction not indexed yet")
	ErrPaymentRejected = errors.New("no qualifying payment found")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
)
