package ingest

import "fmt"

// ValidationError marks a record the cleaner cannot normalize. Unlike a
// fetch failure, which drops a single page, a validation failure fails the
// whole run: it means the upstream markup changed shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
