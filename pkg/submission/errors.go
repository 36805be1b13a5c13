package submission

import "strings"

// ValidationError reports a single user-correctable field problem. It blocks
// the save or transition it was raised for and never reaches the persistence
// or scoring collaborators.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors aggregates per-field validation failures. Each missing
// condition is checked independently and reported distinctly.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, "; ")
}

// StateError reports an invalid workflow transition or an operation invoked
// in the wrong step. It is raised before any mutation, so the draft is left
// unchanged.
type StateError struct {
	Code    string `json:"code"`
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

func (e *StateError) Error() string {
	return e.Message
}
