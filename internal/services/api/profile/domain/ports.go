package domain

import (
	"context"
	"time"
)

// ZonePort resolves the calendar zone a user logs in
type ZonePort interface {
	Location(ctx context.Context, userID string) (*time.Location, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ZonePort
	Profile(ctx context.Context, in ProfileInput) (Profile, error)
	SetTimezone(ctx context.Context, in TimezoneInput) (TimezoneResult, error)
}
