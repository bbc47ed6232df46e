package main

import (
	"fmt"
	"strings"
	"time"

	"immersion/internal/core/amount"
	"immersion/internal/core/calendar"
	"immersion/internal/core/medium"
	"immersion/internal/core/normalize"
	"immersion/internal/services/api/immersion/service"
	immersion "immersion/internal/services/api/immersion/domain"
	profile "immersion/internal/services/api/profile/domain"

	"github.com/spf13/cobra"
)

// now is a seam for tests
var now = time.Now

// parsed is what parse prints
type parsed struct {
	Amount      string         `json:"amount"`
	Kind        string         `json:"kind"`
	Seconds     int            `json:"seconds,omitempty"`
	Episodes    int            `json:"episodes,omitempty"`
	Log         *normalize.Log `json:"log,omitempty"`
	Description string         `json:"description,omitempty"`
	Headline    string         `json:"headline,omitempty"`
}

func newParseCmd() *cobra.Command {
	var raw normalize.Raw
	var tz string

	cmd := &cobra.Command{
		Use:   "parse AMOUNT",
		Short: "Parse an amount, and normalize it when --medium is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := amount.Parse(args[0])
			if err != nil {
				return service.Reject(&normalize.Error{Kind: normalize.KindFormat, Field: "amount", Reason: normalize.ReasonAmountFormat})
			}
			out := parsed{Amount: args[0], Kind: a.Kind.String(), Seconds: a.Seconds, Episodes: a.Episodes}

			if raw.Medium != "" {
				loc, err := time.LoadLocation(tz)
				if err != nil {
					return fmt.Errorf("unknown time zone %q", tz)
				}
				raw.Amount = args[0]
				l, err := normalize.FromRaw(raw, calendar.Today(now(), loc))
				if err != nil {
					return service.Reject(err)
				}
				out.Log, out.Description, out.Headline = &l, l.Description(), l.Headline()
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&raw.Medium, "medium", "", "medium to normalize against")
	cmd.Flags().StringVar(&raw.EpisodeLength, "episode-length", "", "per episode length for episode amounts")
	cmd.Flags().StringVar(&raw.Date, "date", "", "backfill date, YYYY-MM-DD")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "zone that decides today")
	return cmd
}

// newLogCmd builds "log" or, with backfill, "backfill"
func newLogCmd(backfill bool) *cobra.Command {
	var in immersion.BackfillInput

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log immersion for today in the user's time zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), func(b *backend) error {
				var (
					out immersion.Logged
					err error
				)
				if backfill {
					out, err = b.logger.Backfill(cmd.Context(), in)
				} else {
					out, err = b.logger.Log(cmd.Context(), in.LogInput)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	if backfill {
		cmd.Use, cmd.Short = "backfill", "Log immersion on a past date"
		cmd.Flags().StringVar(&in.Date, "date", "", "YYYY-MM-DD")
		_ = cmd.MarkFlagRequired("date")
	}

	f := cmd.Flags()
	f.StringVar(&in.UserID, "user", "", "discord user id")
	f.StringVar(&in.GuildID, "guild", "", "discord guild id")
	f.StringVar(&in.Medium, "medium", "", "one of "+strings.Join(medium.Names(), ", "))
	f.StringVar(&in.Amount, "amount", "", "time like 1h30m or episodes like 10ep")
	f.StringVar(&in.Title, "title", "", "what was immersed in")
	f.StringVar(&in.Notes, "notes", "", "optional notes")
	f.StringVar(&in.EpisodeLength, "episode-length", "", "per episode length, e.g. 24m")
	for _, name := range []string{"user", "medium", "amount", "title"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newProfileCmd() *cobra.Command {
	var in profile.ProfileInput

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show totals, streak and history for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), func(b *backend) error {
				p, err := b.profile.Profile(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	}
	cmd.Flags().StringVar(&in.UserID, "user", "", "discord user id")
	cmd.Flags().StringVar(&in.GuildID, "guild", "", "discord guild id")
	cmd.Flags().StringVar(&in.Period, "period", "all", "all, year, month or week")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTimezoneCmd() *cobra.Command {
	var in profile.TimezoneInput

	cmd := &cobra.Command{
		Use:   "timezone ZONE",
		Short: "Set the IANA zone a user's days are counted in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Timezone = args[0]
			return withBackend(cmd.Context(), func(b *backend) error {
				res, err := b.profile.SetTimezone(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&in.UserID, "user", "", "discord user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres tables, and the clickhouse mirror table when enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), func(b *backend) error {
				if err := b.migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}
