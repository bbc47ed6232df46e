package modkit

import (
	"immersion/internal/modkit/repokit"
	"immersion/internal/platform/config"
	"immersion/internal/platform/logger"
	ptime "immersion/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// CH is nil when the analytics mirror is disabled
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    repokit.Columnar
	Clock ptime.Clock
}
