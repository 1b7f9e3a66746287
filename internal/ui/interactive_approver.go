package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user before appending to a
// channel table that already contains rows.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin and prompting on stderr.
func NewInteractiveApprover(verbose bool) tvload.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval asks the user to confirm the append with y/N.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, existing int64) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  The target already holds %d channel(s).\n", existing)
	fmt.Fprintln(a.output, "Loading appends to the existing listings; nothing is deleted or replaced.")
	fmt.Fprint(a.output, "\nContinue with the append? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed. Appending to the existing listings...")
			return true, nil
		}
		fmt.Fprintln(a.output, "✗ Append cancelled.")
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ tvload.Approver = (*InteractiveApprover)(nil)
