// Package schema owns the target tables for channel loading.
//
// The DDL ships embedded in the binary and is applied at the start of
// every run. It is idempotent, so an already provisioned database is
// left untouched.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DDL returns the embedded schema definition, for display by the
// schema command.
func DDL() string {
	return schemaSQL
}

// Apply creates the categorias and canales tables if they do not exist.
// Must run on the session connection so later statements in the same
// run see the tables without waiting on other pool connections.
func Apply(ctx context.Context, conn *pgxpool.Conn) error {
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
