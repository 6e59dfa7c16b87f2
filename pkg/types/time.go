// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "time"

// Timestamp is a point in time in milliseconds since the Unix epoch,
// the resolution the host chain exposes to contracts.
type Timestamp uint64

// Clock resolves the current time for a component. Components never
// read the wall clock directly so tests can drive vesting schedules.
type Clock func() Timestamp

// WallClock is the production Clock.
func WallClock() Timestamp {
	return Timestamp(time.Now().UnixMilli())
}
