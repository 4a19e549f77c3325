package storage

import "errors"

// ErrPoolNotFound is returned when no pool record exists for a game day.
var ErrPoolNotFound = errors.New("pool not found")

// ErrPoolExists is returned by a conditional create when the pool already exists.
var ErrPoolExists = errors.New("pool already exists")

// ErrPoolClosed is returned when a contribution reaches a pool that has been distributed.
var ErrPoolClosed = errors.New("pool closed for contributions")

// ErrDuplicateTicket is returned when a ticket has already contributed to a pool.
var ErrDuplicateTicket = errors.New("ticket already recorded")

// ErrPurchaseNotFound is returned when no purchase exists for a ticket ID.
var ErrPurchaseNotFound = errors.New("ticket purchase not found")

// ErrDistributionExists is returned when a payout record already exists for a day and tier.
var ErrDistributionExists = errors.New("distribution record already exists")

// ErrDistributionNotFound is returned when no payout record exists for a day and tier.
var ErrDistributionNotFound = errors.New("distribution record not found")

// ErrConcurrencyConflict is returned when an atomic write lost a race with another writer.
// Callers retry the whole read-modify-write when they see it.
var ErrConcurrencyConflict = errors.New("concurrent modification")

// ErrDrawNotFound is returned when the oracle has not published a result for a day.
var ErrDrawNotFound = errors.New("draw result not found")

// ErrAlreadySettled is returned when a settlement for the same user and ticket exists.
var ErrAlreadySettled = errors.New("award already settled")
