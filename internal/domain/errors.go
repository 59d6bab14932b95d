package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthenticated indicates an operation that requires a signed-in
	// customer was attempted without one.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrMultipleSellers blocks checkout while the cart mixes items from
	// more than one seller.
	ErrMultipleSellers = errors.New("cart contains items from multiple sellers")
	// ErrEmptyCart blocks checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)
