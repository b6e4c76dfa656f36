package fusion

import "fmt"

// ColumnError reports an update column missing from the fusions header.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("fusions table: missing %q column", e.Column)
}

// ParseError represents an error during fusions parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fusions parse error at line %d: %s", e.Line, e.Message)
}
