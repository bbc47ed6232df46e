package module

import (
	"time"

	"immersion/internal/platform/config"
)

// Options are the CORE_IMMERSION_ knobs the profile reads
type Options struct {
	// TestingGuild only sees its own logs and is hidden from every other guild
	TestingGuild string
	// DefaultZone dates logs for users without a stored zone
	DefaultZone *time.Location
}

// FromConfig reads CORE_IMMERSION_TESTING_GUILD and CORE_IMMERSION_DEFAULT_TZ
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_IMMERSION_")
	return Options{
		TestingGuild: c.MayString("TESTING_GUILD", ""),
		DefaultZone:  c.MayLocation("DEFAULT_TZ", time.UTC),
	}
}
