package catalog

import "errors"

var (
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrInvalidItemType    = errors.New("invalid item type")
	ErrInvalidServiceType = errors.New("invalid service type")
)
