package watcher

import (
	"time"

	"peat/internal/config"
)

const (
	// DynamicInterval is used when paths come from a generator command, since
	// re-running it on a tight loop would be costly.
	DynamicInterval = time.Second

	smartIntervalCeiling = 50
	smartIntervalMaxMS   = 1000
)

// SmartInterval grows from 0 toward one second as the number of watched
// paths approaches 50, and stays at one second beyond that.
func SmartInterval(count int) time.Duration {
	if count >= smartIntervalCeiling {
		return smartIntervalMaxMS * time.Millisecond
	}
	if count < 0 {
		count = 0
	}
	remaining := float64(smartIntervalCeiling - count)
	ratio := (remaining * remaining) / (smartIntervalCeiling * smartIntervalCeiling)
	ms := int(smartIntervalMaxMS * (1 - ratio))
	return time.Duration(ms) * time.Millisecond
}

// ResolveInterval picks the poll interval once at startup.
func ResolveInterval(cfg config.Config, count int) time.Duration {
	switch {
	case cfg.HasInterval():
		return cfg.Interval
	case cfg.Dynamic:
		return DynamicInterval
	default:
		return SmartInterval(count)
	}
}
