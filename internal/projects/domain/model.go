package domain

// Project is a single project record as shown on the Projects screen.
// Values are treated as immutable: an edit builds a new Project with With.
type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	ImageURL    string  `json:"imageUrl"`
	IsActive    bool    `json:"isActive"`
}

// Patch is a partial field set. Nil fields keep the base value.
type Patch struct {
	Name        *string
	Description *string
	Budget      *float64
	ImageURL    *string
	IsActive    *bool
}

// With returns a new Project built from p with the non-nil fields of patch applied.
// The id is never changed by a patch.
func (p Project) With(patch Patch) Project {
	out := p
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Budget != nil {
		out.Budget = *patch.Budget
	}
	if patch.ImageURL != nil {
		out.ImageURL = *patch.ImageURL
	}
	if patch.IsActive != nil {
		out.IsActive = *patch.IsActive
	}
	return out
}

// IsNew reports whether the project has not been persisted yet.
func (p Project) IsNew() bool {
	return p.ID == 0
}

// Ptr is a small helper for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
