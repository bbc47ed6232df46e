package domain

import (
	"immersion/internal/core/calendar"
	"immersion/internal/core/history"
	"immersion/internal/core/streak"
)

// ProfileInput selects whose profile to build and how much history to chart
type ProfileInput struct {
	UserID  string `json:"user_id"  validate:"required,max=32"  example:"123456789012345678"`
	GuildID string `json:"guild_id" validate:"omitempty,max=32" example:"987654321098765432"`
	Period  string `json:"period"   validate:"omitempty,oneof=all year month week" example:"week"`
}

// BreakdownRow is one medium's all-time total
// Amount is minutes for time based media and episodes for Anime
type BreakdownRow struct {
	Medium string  `json:"medium" example:"Listening"`
	Amount float64 `json:"amount" example:"45"`
	Unit   string  `json:"unit"   example:"Minutes"`
	Points int64   `json:"points" example:"2700"`
}

// Profile is the read model shown for a user
type Profile struct {
	UserID         string           `json:"user_id"`
	Timezone       string           `json:"timezone"        example:"Asia/Tokyo"`
	Period         string           `json:"period"          example:"week"`
	Today          calendar.Date    `json:"today"`
	TotalPoints    int64            `json:"total_points"    example:"16890"`
	Streak         streak.Info      `json:"streak"`
	Breakdown      []BreakdownRow   `json:"breakdown"`
	MangaPages     int64            `json:"manga_pages"     example:"50"`
	CharactersRead int64            `json:"characters_read" example:"10000"`
	History        []history.Bucket `json:"history"`
}

// TimezoneInput sets a user's IANA zone
type TimezoneInput struct {
	UserID   string `json:"user_id"  validate:"required,max=32" example:"123456789012345678"`
	Timezone string `json:"timezone" validate:"required,timezone" example:"Asia/Tokyo"`
}

// TimezoneResult echoes the stored zone
type TimezoneResult struct {
	UserID   string `json:"user_id"`
	Timezone string `json:"timezone"`
}
