// Package types provides type definitions for structured data used throughout the career-roadmap system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Focus selects which phase of a roadmap receives extra time.
type Focus string

const (
	// FocusDepth extends Core Skills Development
	FocusDepth Focus = "Depth"
	// FocusFastEntry extends Practical Application
	FocusFastEntry Focus = "Fast-Entry"
	// FocusTransition extends Career Launch
	FocusTransition Focus = "Transition"
)

// Focuses is the fixed generation order of roadmap variants.
var Focuses = []Focus{FocusDepth, FocusFastEntry, FocusTransition}

// ParseFocus accepts the canonical names plus "FastEntry".
func ParseFocus(s string) (Focus, error) {
	switch s {
	case string(FocusDepth):
		return FocusDepth, nil
	case string(FocusFastEntry), "FastEntry":
		return FocusFastEntry, nil
	case string(FocusTransition):
		return FocusTransition, nil
	}
	return "", fmt.Errorf("unknown focus %q", s)
}

// UnmarshalJSON rejects unknown focus values.
func (f *Focus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFocus(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// RoadmapStep is a node of a roadmap tree. Children are owned by their parent.
type RoadmapStep struct {
	Title          string        `json:"title"`
	Objective      string        `json:"objective"`
	DurationMonths int           `json:"duration_months"`
	Prerequisites  []string      `json:"prerequisites"`
	Milestones     []string      `json:"milestones"`
	Resources      []string      `json:"resources"`
	Tasks          []string      `json:"tasks"`
	Children       []RoadmapStep `json:"children"`
}

// Walk visits the step and its descendants in pre-order with their depth.
func (s *RoadmapStep) Walk(depth int, fn func(step *RoadmapStep, depth int)) {
	fn(s, depth)
	for i := range s.Children {
		s.Children[i].Walk(depth+1, fn)
	}
}

// Roadmap is one focus variant of a career plan.
type Roadmap struct {
	PathTitle       string        `json:"path_title"`
	Focus           Focus         `json:"focus"`
	ConfidenceScore float64       `json:"confidence_score"`
	Steps           []RoadmapStep `json:"steps"`
}

// CountSteps returns the number of nodes across all step trees.
func (r *Roadmap) CountSteps() int {
	n := 0
	for i := range r.Steps {
		r.Steps[i].Walk(0, func(*RoadmapStep, int) { n++ })
	}
	return n
}
