package core

import "fmt"

// SchemaError reports a missing or malformed column or field in sample data.
// It indicates broken upstream data and aborts the pipeline run.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s", e.Field, e.Message)
}

// NotImplementedError reports a recognized option that has no implementation yet.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}

// UnsupportedCompositionError reports an invalid composition kind/stereospecificity
// combination or an invalid nesting of composition levels.
type UnsupportedCompositionError struct {
	Composition string
	Reason      string
}

func (e *UnsupportedCompositionError) Error() string {
	return fmt.Sprintf("unsupported composition %s: %s", e.Composition, e.Reason)
}
