package auctionerrors

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the services wraps exactly one of these.
var (
	ErrValidation      = errors.New("validation error")
	ErrAuthorization   = errors.New("authorization error")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("authentication required")
)

// Repository-level errors
var (
	ErrListingNotFound  = fmt.Errorf("listing %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrNoBids           = errors.New("no bids found for listing")
	ErrUsernameTaken    = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrCategoryExists   = fmt.Errorf("%w: category already exists", ErrConflict)
	ErrBidConflict      = fmt.Errorf("%w: listing changed while bidding, try again", ErrConflict)
)

// business logic errors
var (
	ErrInvalidBid       = fmt.Errorf("%w: invalid bid", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrBidTooLow        = fmt.Errorf("%w: bid must be higher than the current highest bid", ErrValidation)
	ErrBelowStartingBid = fmt.Errorf("%w: bid must be at least the starting bid", ErrValidation)
	ErrSelfBid          = fmt.Errorf("%w: owners cannot bid on their own listing", ErrValidation)
	ErrInvalidListing   = fmt.Errorf("%w: invalid listing", ErrValidation)
	ErrInvalidComment   = fmt.Errorf("%w: invalid comment", ErrValidation)
	ErrInvalidAccount   = fmt.Errorf("%w: invalid account details", ErrValidation)
	ErrInvalidCategory  = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrListingClosed    = fmt.Errorf("%w: listing is closed", ErrInvalidState)
	ErrNotListingOwner  = fmt.Errorf("%w: only the listing owner can close it", ErrAuthorization)
)
