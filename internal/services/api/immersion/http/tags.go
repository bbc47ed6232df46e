package http

import (
	"sync"

	"immersion/internal/core/amount"
	"immersion/internal/core/calendar"
	"immersion/internal/core/normalize"
	"immersion/internal/platform/net/http/bind"
)

var tagsOnce sync.Once

// registerTags teaches the validator the logging grammars
// messages match the normalizer's so clients see one wording either way
func registerTags() {
	tagsOnce.Do(func() {
		must(bind.RegisterTag("amount", normalize.ReasonAmountFormat, func(fl bind.FieldLevel) bool {
			_, err := amount.Parse(fl.Field().String())
			return err == nil
		}))
		must(bind.RegisterTag("timespan", normalize.ReasonEpisodeLengthFormat, func(fl bind.FieldLevel) bool {
			secs, err := amount.ParseTime(fl.Field().String())
			return err == nil && secs > 0
		}))
		must(bind.RegisterTag("ymd", normalize.ReasonDateFormat, func(fl bind.FieldLevel) bool {
			_, err := calendar.Parse(fl.Field().String())
			return err == nil
		}))
	})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
