// Package types provides type definitions for structured data used throughout the career-roadmap system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Occupation is one entry of the reference corpus. Skills hold canonical,
// lower-cased skill tokens in vocabulary order.
type Occupation struct {
	Name        string   `json:"career"`
	Skills      []string `json:"skills"`
	Tasks       []string `json:"tasks"`
	Education   []string `json:"education"`
	Description string   `json:"description"`
}

// HasSkill reports whether token is part of the occupation's vocabulary.
func (o *Occupation) HasSkill(token string) bool {
	for _, s := range o.Skills {
		if s == token {
			return true
		}
	}
	return false
}
