package llm

import "fmt"

// TransportError reports that the completion provider could not be
// reached or answered with an error. It carries the provider's message
// and is retried by the pipeline.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SchemaError reports that the provider answered, but the text was not
// a well-formed critique. Retried under the same policy as transport
// failures.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed critique: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// TerminalFailure is returned once the attempt budget is exhausted
// without a valid critique. The owning submission remains valid.
type TerminalFailure struct {
	Attempts int
	LastErr  error
}

func (e *TerminalFailure) Error() string {
	return fmt.Sprintf("query did not produce desired structured output after %d attempts", e.Attempts)
}

func (e *TerminalFailure) Unwrap() error { return e.LastErr }
