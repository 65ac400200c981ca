// Package types provides type definitions for structured data used throughout the career-roadmap system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// QuizAnswer is a single answer of the aptitude quiz.
type QuizAnswer struct {
	Type string `json:"type" validate:"required,oneof=A B C D a b c d"`
}

// GenerateRequest is the input of the roadmap pipeline.
type GenerateRequest struct {
	Skills    []string     `json:"skills" validate:"max=100,dive,max=200"`
	Answers   []QuizAnswer `json:"answers" validate:"max=100,dive"`
	Education string       `json:"education" validate:"max=200"`
	Summary   string       `json:"summary" validate:"max=5000"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Output is the complete result of one pipeline run.
type Output struct {
	Input         GenerateRequest `json:"input"`
	DerivedSkills []string        `json:"derived_skills"`
	ChosenCareer  string          `json:"chosen_career"`
	Roadmaps      []Roadmap       `json:"roadmaps"`
}

// GenerateResponse is the API response: the pipeline output plus links to
// rendered diagrams.
type GenerateResponse struct {
	Output
	Images []string `json:"images"`
}
