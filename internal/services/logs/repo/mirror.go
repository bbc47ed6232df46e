package repo

import (
	"context"

	"immersion/internal/modkit/repokit"
	"immersion/internal/services/logs/domain"
)

// MirrorTable is the clickhouse table logs are copied to
const MirrorTable = "immersion_logs"

const mirrorDDL = `
create table if not exists immersion_logs (
    id         UUID,
    user_id    String,
    guild_id   LowCardinality(String),
    medium     LowCardinality(String),
    unit       LowCardinality(String),
    count      UInt32,
    points     UInt32,
    log_date   Date,
    backfilled Bool,
    created_at DateTime64(3, 'UTC')
) engine = MergeTree
order by (user_id, log_date)
`

// CH copies records into clickhouse
type CH struct{ ch repokit.Columnar }

// NewCH returns a clickhouse mirror
func NewCH(ch repokit.Columnar) *CH { return &CH{ch: ch} }

// EnsureSchema creates the mirror table when missing
func (m *CH) EnsureSchema(ctx context.Context) error { return m.ch.Exec(ctx, mirrorDDL) }

// Mirror implements domain.Mirror
func (m *CH) Mirror(ctx context.Context, rec domain.Record) error {
	return m.ch.Insert(ctx, MirrorTable, [][]any{{
		rec.ID, rec.UserID, rec.GuildID, string(rec.Medium), string(rec.Unit),
		uint32(rec.Count), uint32(rec.Points), rec.Date.Time(), rec.Backfilled, rec.CreatedAt.UTC(),
	}})
}

// Nop drops records; used when the mirror is disabled
type Nop struct{}

// Mirror implements domain.Mirror
func (Nop) Mirror(context.Context, domain.Record) error { return nil }
