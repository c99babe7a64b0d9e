package store

import "errors"

var (
	// ErrNotFound indicates the targeted row, or a row it references, does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrTableExists indicates a table with that number already exists.
	ErrTableExists = errors.New("table already exists")

	// ErrInvalidStatus indicates a value outside a closed enumeration.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidTransition indicates a status change the workflow does not
	// allow from the order's current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyOrder indicates an order creation with no line items.
	ErrEmptyOrder = errors.New("order has no line items")

	// ErrUnknownMenuItem indicates a line item referencing an absent
	// catalog entry.
	ErrUnknownMenuItem = errors.New("unknown menu item")

	// ErrItemUnavailable indicates a line item referencing a catalog entry
	// whose availability is toggled off.
	ErrItemUnavailable = errors.New("menu item unavailable")

	// ErrAggregateMismatch indicates caller-supplied total_amount or
	// max_prep_time disagreeing with the server-side recomputation.
	ErrAggregateMismatch = errors.New("supplied aggregate does not match line items")

	// ErrInvalidQuantity indicates a line item with a non-positive quantity.
	ErrInvalidQuantity = errors.New("line item quantity must be positive")

	// ErrInvalidRequestType indicates a request type outside the accepted set.
	ErrInvalidRequestType = errors.New("invalid request type")

	// ErrAmountNotAllowed indicates an amount attached to a request type
	// that does not carry one.
	ErrAmountNotAllowed = errors.New("amount is only valid for bill requests")

	// ErrDuplicateEmail indicates a profile creation with an email already
	// in use.
	ErrDuplicateEmail = errors.New("email already registered")
)
