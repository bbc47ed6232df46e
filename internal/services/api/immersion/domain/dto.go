// Package domain holds immersion logging DTOs and ports
package domain

import logs "immersion/internal/services/logs/domain"

// LogInput is a live log; it is dated today in the user's zone
type LogInput struct {
	UserID        string `json:"user_id"                  validate:"required,max=32"         example:"123456789012345678"`
	GuildID       string `json:"guild_id"                 validate:"omitempty,max=32"        example:"987654321098765432"`
	Medium        string `json:"medium"                   validate:"required"                example:"Anime"`
	Amount        string `json:"amount"                   validate:"required,amount"         example:"10ep"`
	Title         string `json:"title"                    validate:"required,max=400"        example:"Frieren"`
	Notes         string `json:"notes,omitempty"          validate:"omitempty,max=2000"`
	EpisodeLength string `json:"episode_length,omitempty" validate:"omitempty,timespan"      example:"24m"`
}

// BackfillInput logs on an explicit past date
// Date is declared first so a bad date is reported before a bad amount
type BackfillInput struct {
	Date string `json:"date" validate:"required,ymd" example:"2024-03-01"`
	LogInput
}

// Logged is a stored log plus its confirmation lines
type Logged struct {
	logs.Record
	Description string `json:"description" example:"1260 seconds/episode → +12600 seconds"`
	Headline    string `json:"headline"    example:"Logged 10ep of Anime"`
}
