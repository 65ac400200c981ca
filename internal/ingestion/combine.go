package ingestion

import (
	"sort"
	"strings"

	"github.com/jonathan/career-roadmap/internal/types"
)

// Summary counts what Combine did.
type Summary struct {
	ESCO     int `json:"esco"`
	ONET     int `json:"onet"`
	Enriched int `json:"enriched"`
	Added    int `json:"added"`
	Total    int `json:"total"`
}

// Combine merges ESCO and O*NET entries into corpus occupations. ESCO
// entries come first; each O*NET entry merges into the first occupation
// whose lower-cased name contains, or is contained in, its own, and is
// appended otherwise.
func Combine(esco, onet []Entry) ([]types.Occupation, Summary) {
	summary := Summary{ESCO: len(esco), ONET: len(onet)}
	combined := make([]types.Occupation, 0, len(esco)+len(onet))
	for _, e := range esco {
		combined = append(combined, newOccupation(e.Name, e.Skills, nil))
	}

	for _, e := range onet {
		idx := findContaining(combined, e.Name)
		if idx < 0 {
			combined = append(combined, newOccupation(e.Name, e.Skills, e.Tasks))
			summary.Added++
			continue
		}
		match := &combined[idx]
		match.Skills = unionLower(match.Skills, e.Skills)
		match.Tasks = appendNew(match.Tasks, e.Tasks)
		summary.Enriched++
	}

	summary.Total = len(combined)
	return combined, summary
}

func newOccupation(name string, skills, tasks []string) types.Occupation {
	return types.Occupation{
		Name:      name,
		Skills:    unionLower(nil, skills),
		Tasks:     appendNew([]string{}, tasks),
		Education: []string{},
	}
}

func findContaining(occupations []types.Occupation, name string) int {
	needle := strings.ToLower(name)
	for i := range occupations {
		have := strings.ToLower(occupations[i].Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return i
		}
	}
	return -1
}

func unionLower(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				set[s] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func appendNew(existing, additions []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t] = struct{}{}
	}
	for _, t := range additions {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		existing = append(existing, t)
	}
	return existing
}
