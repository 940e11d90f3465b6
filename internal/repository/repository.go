// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch data,
// abstracting SQL logic away from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DBTX is the query surface repositories need. *pgxpool.Pool satisfies it.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryLogger logs queries slower than threshold. A zero threshold disables it.
type queryLogger struct {
	log       *zerolog.Logger
	threshold time.Duration
}

func (q queryLogger) observe(query string, start time.Time, rows int) {
	elapsed := time.Since(start)
	if q.log == nil || q.threshold <= 0 || elapsed < q.threshold {
		return
	}

	q.log.Warn().
		Str("query", query).
		Dur("duration", elapsed).
		Dur("threshold", q.threshold).
		Int("rows", rows).
		Msg("slow query")
}
