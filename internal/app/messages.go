package app

import "time"

// TickMsg triggers a statistics refresh.
type TickMsg time.Time

// EvictMsg triggers sample and device eviction.
type EvictMsg time.Time
