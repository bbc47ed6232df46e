// Package repokit holds the seams repos are written against
package repokit

import "immersion/internal/platform/store"

type (
	// Queryer is the read and write surface a repo binds to, the pool or an open transaction
	Queryer = store.RowQuerier

	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner

	// Columnar is the clickhouse seam repos mirror into
	Columnar = store.Clickhouse
)
