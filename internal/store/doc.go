// Package store implements PostgreSQL persistence for categories and
// channels.
//
// Both stores run over a Querier, which either the run's single session
// connection or a pool satisfies. Errors keep the pgx error chain intact
// so callers can classify them — the category resolver in particular
// depends on spotting unique violations to resolve create races.
package store
