package tvload

import "context"

// Approver handles user interaction for approval workflows, here
// confirming an append into a channel table that already has rows.
//
// Implementations:
//   - NonInteractiveApprover: logs and automatically approves
//   - InteractiveApprover: prompts the user for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before appending to a
	// non-empty target.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - existing: Number of channel rows already in the store
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, existing int64) (bool, error)
}
