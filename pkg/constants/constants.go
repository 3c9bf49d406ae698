package constants

import "time"

const (
	CHANNEL_SIZE = 100 // per-connection and hub channel buffer

	// Unconfirmed registrations expire after this long; the cleanup job
	// sweeps them on a fixed interval.
	PENDING_USER_TTL   = 3 * time.Minute
	PENDING_USER_SWEEP = time.Hour
)
