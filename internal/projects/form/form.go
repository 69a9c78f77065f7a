// Package form keeps the candidate project being edited together with its
// field errors, re-validating after every change.
package form

import (
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/validation"
)

// Input types understood by Change.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
)

// Field names accepted by Change in addition to the validated ones.
const (
	FieldImageURL = "imageUrl"
	FieldIsActive = "isActive"
)

// Input describes a single field change coming from the edit form. An empty
// Type is read as text, like an HTML input without a type attribute.
type Input struct {
	Type    string
	Name    string
	Value   string
	Checked bool
}

// Form is the edit form state for one project.
type Form struct {
	original  domain.Project
	candidate domain.Project
	errors    validation.Errors
}

// New opens a form seeded with p. No errors are shown until the first change.
func New(p domain.Project) *Form {
	return &Form{
		original:  p,
		candidate: p,
		errors:    validation.Empty(),
	}
}

// Candidate returns the current candidate project.
func (f *Form) Candidate() domain.Project {
	return f.candidate
}

// Original returns the project the form was opened with.
func (f *Form) Original() domain.Project {
	return f.original
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() validation.Errors {
	out := make(validation.Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Dirty reports whether the candidate differs from the original project.
func (f *Form) Dirty() bool {
	return f.candidate != f.original
}

// Change applies a field change, builds a new candidate and re-validates it.
// The value is coerced by input type first and then routed by name. Unknown
// names, and values whose type does not fit the named field, are ignored.
func (f *Form) Change(in Input) {
	patch, ok := patchFor(in.Name, coerce(in))
	if !ok {
		return
	}
	f.candidate = f.candidate.With(patch)
	f.errors = validation.Validate(f.candidate)
}

// Valid reports whether the candidate passes every field rule.
func (f *Form) Valid() bool {
	return validation.Validate(f.candidate).Valid()
}

// Submit hands the candidate to onSave when it is valid. An invalid candidate
// is refused silently: the errors are refreshed and false is returned.
func (f *Form) Submit(onSave func(domain.Project)) bool {
	errs := validation.Validate(f.candidate)
	if !errs.Valid() {
		f.errors = errs
		return false
	}
	if onSave != nil {
		onSave(f.candidate)
	}
	return true
}

// value is an input coerced by its type: numbers for number inputs,
// the checked state for checkboxes and the raw text for everything else.
type value struct {
	kind    string
	text    string
	number  float64
	checked bool
}

func coerce(in Input) value {
	switch in.Type {
	case TypeNumber:
		return value{kind: TypeNumber, number: toNumber(in.Value)}
	case TypeCheckbox:
		return value{kind: TypeCheckbox, checked: in.Checked}
	default:
		return value{kind: TypeText, text: in.Value}
	}
}

func patchFor(name string, v value) (domain.Patch, bool) {
	switch {
	case name == validation.FieldName && v.kind == TypeText:
		return domain.Patch{Name: domain.Ptr(v.text)}, true
	case name == validation.FieldDescription && v.kind == TypeText:
		return domain.Patch{Description: domain.Ptr(v.text)}, true
	case name == FieldImageURL && v.kind == TypeText:
		return domain.Patch{ImageURL: domain.Ptr(v.text)}, true
	case name == validation.FieldBudget && v.kind == TypeNumber:
		return domain.Patch{Budget: domain.Ptr(v.number)}, true
	case name == FieldIsActive && v.kind == TypeCheckbox:
		return domain.Patch{IsActive: domain.Ptr(v.checked)}, true
	}
	return domain.Patch{}, false
}

// toNumber coerces a number input. Empty and unparsable input become 0 so
// that the budget rule reports them.
func toNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
