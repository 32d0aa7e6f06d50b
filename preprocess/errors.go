package preprocess

import (
	"errors"
	"fmt"
	"strings"
)

// SourceError is the single diagnostic channel for preprocessing failures:
// the Session raises exactly one per failure and it aborts the whole
// top-level request.
type SourceError struct {
	File     string
	Line     int    // 1-based; 0 when no source line is attached
	Column   int    // 0-based caret offset into LineText
	LineText string // offending line (newline-normalized before formatting)
	Message  string

	// Trail records the inclusion chain the error unwound through,
	// innermost frame first. Appended to as the error propagates.
	Trail []IncludeFrame
}

// IncludeFrame is one "included from" annotation on an error's trail.
type IncludeFrame struct {
	File string
	Line int
}

// Error renders the diagnostic: a header, the numbered source line, a caret
// line indented to the column offset, and any inclusion trail.
func (e *SourceError) Error() string {
	var sb strings.Builder
	if e.Line == 0 {
		fmt.Fprintf(&sb, "In file '%s': error: %s", e.File, e.Message)
	} else {
		fmt.Fprintf(&sb, "In file '%s' on line %d: error: %s", e.File, e.Line, e.Message)
		text := strings.TrimRight(e.LineText, "\n")
		prefix := fmt.Sprintf("%4d | ", e.Line)
		fmt.Fprintf(&sb, "\n%s%s", prefix, text)
		col := e.Column
		if col > len(text) {
			col = len(text)
		}
		fmt.Fprintf(&sb, "\n%s^", strings.Repeat(" ", len(prefix)+col))
	}
	for _, f := range e.Trail {
		fmt.Fprintf(&sb, "\n  included from '%s', line %d", f.File, f.Line)
	}
	return sb.String()
}

// errorf builds a SourceError anchored at a source line.
func errorf(file string, line, column int, lineText, format string, args ...any) *SourceError {
	return &SourceError{
		File:     file,
		Line:     line,
		Column:   column,
		LineText: lineText,
		Message:  fmt.Sprintf(format, args...),
	}
}

// appendTrail annotates err with the inclusion site it is unwinding through.
func appendTrail(err error, file string, line int) error {
	var se *SourceError
	if errors.As(err, &se) {
		se.Trail = append(se.Trail, IncludeFrame{File: file, Line: line})
		return err
	}
	return fmt.Errorf("included from '%s', line %d: %w", file, line, err)
}
