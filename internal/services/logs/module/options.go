package module

import "immersion/internal/platform/config"

// Options controls the logs module
type Options struct {
	// Mirror copies every stored log to clickhouse when a connection is available
	Mirror bool
}

// FromConfig reads CORE_IMMERSION_ keys
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_IMMERSION_")
	return Options{
		Mirror: c.MayBool("MIRROR", false),
	}
}
