package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// NonInteractiveApprover implements the Approver interface for contexts
// with no terminal attached (CI pipelines, cron, piped input). It cannot
// ask anyone, so it denies the append and points at --force.
type NonInteractiveApprover struct {
	verbose bool
	output  io.Writer
}

// NewNonInteractiveApprover creates a new NonInteractiveApprover writing
// to stderr.
func NewNonInteractiveApprover(verbose bool) tvload.Approver {
	return &NonInteractiveApprover{
		verbose: verbose,
		output:  os.Stderr,
	}
}

// RequestApproval denies the append with an explanation and the flag to
// pass instead.
func (a *NonInteractiveApprover) RequestApproval(ctx context.Context, existing int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\n✗ The target already holds %d channel(s) and no terminal is attached to confirm the append.\n", existing)
	fmt.Fprintln(a.output, "Re-run with --force to append without confirmation.")
	return false, nil
}

// Verify NonInteractiveApprover implements the Approver interface at compile time
var _ tvload.Approver = (*NonInteractiveApprover)(nil)
