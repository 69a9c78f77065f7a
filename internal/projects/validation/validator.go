// Package validation holds the field rules applied to a candidate project
// before it may be submitted.
package validation

import (
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

// Field names as they appear in the edit form.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldBudget      = "budget"
)

const (
	MsgNameRequired        = "Name is required"
	MsgNameTooShort        = "Name must have at least 3 characters"
	MsgDescriptionRequired = "Description is required"
	MsgBudgetNotPositive   = "Budget must be greater than 0"

	minNameLength = 3
)

// Errors maps a field name to its error message. An empty message means the field is valid.
type Errors map[string]string

// Empty returns an error map with every field present and valid.
func Empty() Errors {
	return Errors{
		FieldName:        "",
		FieldDescription: "",
		FieldBudget:      "",
	}
}

// Validate runs every field rule independently and returns the resulting map.
func Validate(p domain.Project) Errors {
	errs := Empty()

	chars := utf8.RuneCountInString(p.Name)
	if chars == 0 {
		errs[FieldName] = MsgNameRequired
	}
	// runs after the emptiness check so its message wins for empty names too
	if chars < minNameLength {
		errs[FieldName] = MsgNameTooShort
	}

	if len(p.Description) == 0 {
		errs[FieldDescription] = MsgDescriptionRequired
	}

	// Negative budgets are not rejected here.
	if p.Budget == 0 {
		errs[FieldBudget] = MsgBudgetNotPositive
	}

	return errs
}

// Valid reports whether every message in the map is empty.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Get returns the message for a field, or "" when the field has no error.
func (e Errors) Get(field string) string {
	return e[field]
}
