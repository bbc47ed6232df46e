// Package domain holds the stored immersion log record and the ports other modules use to read it
package domain

import (
	"context"
	"time"

	"immersion/internal/core/calendar"
	"immersion/internal/core/history"
	"immersion/internal/core/medium"
	"immersion/internal/core/normalize"

	"github.com/google/uuid"
)

// Record is a normalized log plus who logged it
type Record struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	GuildID string    `json:"guild_id"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes,omitempty"`
	normalize.Log
	CreatedAt time.Time `json:"created_at"`
}

// GuildFilter scopes reads by guild
// Only keeps a single guild, Exclude drops one; both empty reads everything
type GuildFilter struct {
	Only    string
	Exclude string
}

// ScopeFor isolates the testing guild: it only sees itself, every other guild sees everything but it
func ScopeFor(guildID, testingGuild string) GuildFilter {
	switch {
	case testingGuild == "":
		return GuildFilter{}
	case guildID == testingGuild:
		return GuildFilter{Only: testingGuild}
	default:
		return GuildFilter{Exclude: testingGuild}
	}
}

// MediumTotal is the all-time sum for one medium
// Count is episodes for Anime and seconds otherwise
type MediumTotal struct {
	Medium medium.Medium
	Unit   normalize.Unit
	Count  int64
	Points int64
}

// StorePort is what the API modules consume
type StorePort interface {
	// Insert stores rec and creates the user row on first use
	Insert(ctx context.Context, rec Record) error
	// Dates returns every date the user logged on, ascending, duplicates removed
	Dates(ctx context.Context, userID string, f GuildFilter) ([]calendar.Date, error)
	// Since returns history entries dated from onward
	Since(ctx context.Context, userID string, f GuildFilter, from calendar.Date) ([]history.Entry, error)
	// Totals sums counts and points per medium
	Totals(ctx context.Context, userID string, f GuildFilter) ([]MediumTotal, error)
}

// Mirror receives a copy of every stored record for analytics
type Mirror interface {
	Mirror(ctx context.Context, rec Record) error
}
