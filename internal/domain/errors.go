package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrTenantRequired          = errors.New("tenant context required")
	ErrInvalidRatePayload      = errors.New("rate payload is empty or malformed")
	ErrCurrencyUnresolved      = errors.New("currency code could not be resolved")
	ErrCarrierModeIncompatible = errors.New("carrier does not service the declared transport mode")
	ErrNoLegsInserted          = errors.New("no transport legs could be inserted")
)
