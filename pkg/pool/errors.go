package pool

import "errors"

// ErrValidation is returned for malformed input. It is never retried.
var ErrValidation = errors.New("validation failed")

// ErrContributionFailed is returned when a contribution kept conflicting with concurrent
// writers until the retry budget ran out. The ticket's money was not added.
var ErrContributionFailed = errors.New("contribution failed")

// ErrDistributionFailed is returned when distribution retries were exhausted.
var ErrDistributionFailed = errors.New("distribution failed")

// ErrPayoutFailed is returned when payout retries were exhausted.
var ErrPayoutFailed = errors.New("payout failed")

// ErrInvariantViolation is returned when stored state breaks a money invariant or an
// operation is called out of order. The engine never corrects it.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrPriorDayUnsettled is returned by carry-forward when an earlier pool inside the window
// has not been distributed, or its payouts are still open.
var ErrPriorDayUnsettled = errors.New("prior game day not settled")

// ErrPayoutWindowClosed is returned when a payout is attempted after the day was finalized.
var ErrPayoutWindowClosed = errors.New("payout window closed")

// ErrNotDistributed is returned when finalizing a pool that was never distributed.
var ErrNotDistributed = errors.New("pool not distributed")

// ErrDrawNotExecuted is returned when a day is paid out or finalized before the oracle
// has executed its draw.
var ErrDrawNotExecuted = errors.New("draw not executed")
