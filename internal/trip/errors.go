package trip

import "fmt"

// ValidationError reports malformed input (import codes, missing required
// fields). The operation leaves state untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PreconditionError reports a blocked structural operation such as deleting
// the last trip or the last day. State is untouched.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

// ExternalServiceError wraps a failure from the AI collaborator. It is always
// caught at the coordinator boundary and converted to a fallback behavior.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// CorruptStorageError reports malformed persisted JSON at startup. The policy
// is fail fast: the error propagates out of LoadInitialState so the binary can
// exit with a clear diagnostic instead of silently discarding user data.
type CorruptStorageError struct {
	Key string
	Err error
}

func (e *CorruptStorageError) Error() string {
	return fmt.Sprintf("corrupt persisted state under %q: %v", e.Key, e.Err)
}

func (e *CorruptStorageError) Unwrap() error { return e.Err }
