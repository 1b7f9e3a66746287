// Package retry provides automatic retry with exponential backoff for
// transient PostgreSQL failures encountered while connecting and loading.
//
// Error classification and backoff timing are pluggable, so the executor
// can serve any operation that talks to the database.
//
// # Example Usage
//
//	classifier := retry.NewPostgreSQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connect(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface decides which errors are transient
// (retryable) versus fatal. PostgreSQLErrorClassifier recognizes
// connection-class SQLSTATE codes, resource exhaustion, operator
// intervention, and common network failures. Schema and constraint
// errors are always fatal.
//
// # Backoff Strategies
//
// The BackoffStrategy interface controls retry timing. ExponentialBackoff
// doubles the delay per attempt (configurable), applies jitter, and caps
// the delay at a maximum.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns an
// independent copy, so per-caller callbacks never share state.
package retry
