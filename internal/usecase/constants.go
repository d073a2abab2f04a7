package usecase

import "time"

const (
	// StatsCacheTTL is how long computed monthly and yearly aggregates are
	// cached. Writes invalidate the affected months eagerly, so this only
	// bounds staleness after a missed invalidation.
	StatsCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
