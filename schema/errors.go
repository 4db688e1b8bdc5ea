package schema

import "fmt"

// MissingColumnError reports a column a computation needs but the loaded
// sources do not provide. Question is empty when the error is raised outside
// a question (for example while reading a header row).
type MissingColumnError struct {
	Question string
	Source   string
	Column   string
}

func (e *MissingColumnError) Error() string {
	switch {
	case e.Question != "" && e.Source != "":
		return fmt.Sprintf("question %q: column %q missing from source %q", e.Question, e.Column, e.Source)
	case e.Question != "":
		return fmt.Sprintf("question %q: required column %q is missing", e.Question, e.Column)
	case e.Source != "":
		return fmt.Sprintf("source %q: column %q is missing", e.Source, e.Column)
	default:
		return fmt.Sprintf("column %q is missing", e.Column)
	}
}
