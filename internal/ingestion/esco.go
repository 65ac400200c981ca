package ingestion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ESCO CSV package file names.
const (
	escoOccupationsFile = "occupations_en.csv"
	escoSkillsFile      = "skills_en.csv"
	escoRelationsFile   = "occupationSkillRelations_en.csv"
)

// Entry is one occupation read from a source dataset.
type Entry struct {
	Name      string
	AltLabels []string
	Skills    []string
	Tasks     []string
}

// LoadESCO reads occupations and their linked skills from an ESCO CSV
// package. Occupations appear in the order their first skill relation does.
// A directory without all three files yields no entries.
func LoadESCO(dir string) ([]Entry, error) {
	occPath := filepath.Join(dir, escoOccupationsFile)
	skPath := filepath.Join(dir, escoSkillsFile)
	relPath := filepath.Join(dir, escoRelationsFile)
	for _, p := range []string{occPath, skPath, relPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, nil
		}
	}

	occTable, err := readTable(occPath, ',')
	if err != nil {
		return nil, &Error{Source: occPath, Message: "failed to read occupations", Cause: err}
	}
	skTable, err := readTable(skPath, ',')
	if err != nil {
		return nil, &Error{Source: skPath, Message: "failed to read skills", Cause: err}
	}
	relTable, err := readTable(relPath, ',')
	if err != nil {
		return nil, &Error{Source: relPath, Message: "failed to read relations", Cause: err}
	}

	occID := occTable.orDefault(occTable.column("conceptUri"), 0)
	occLabel := occTable.column("preferredLabel", "label")
	altLabel := occTable.column("altLabels")
	skID := skTable.orDefault(skTable.column("conceptUri"), 0)
	skLabel := skTable.column("preferredLabel", "label")
	relOcc := relTable.column("occupationUri", "occupation")
	relSkill := relTable.column("skillUri", "skill")
	switch {
	case occID < 0 || occLabel < 0:
		return nil, &Error{Source: occPath, Message: "missing occupation id or label column"}
	case skID < 0 || skLabel < 0:
		return nil, &Error{Source: skPath, Message: "missing skill id or label column"}
	case relOcc < 0 || relSkill < 0:
		return nil, &Error{Source: relPath, Message: "missing occupation or skill column"}
	}

	type occupation struct {
		label string
		alt   []string
	}
	occupations := make(map[string]occupation, len(occTable.rows))
	for _, row := range occTable.rows {
		id := cell(row, occID)
		if id == "" {
			continue
		}
		occupations[id] = occupation{
			label: cell(row, occLabel),
			alt:   splitAltLabels(rawCell(row, altLabel)),
		}
	}
	skillLabels := make(map[string]string, len(skTable.rows))
	for _, row := range skTable.rows {
		if id := cell(row, skID); id != "" {
			skillLabels[id] = cell(row, skLabel)
		}
	}

	var (
		order  []string
		skills = make(map[string]map[string]struct{})
		alts   = make(map[string][]string)
	)
	for _, row := range relTable.rows {
		occ, ok := occupations[cell(row, relOcc)]
		if !ok || occ.label == "" {
			continue
		}
		skill, ok := skillLabels[cell(row, relSkill)]
		if !ok || skill == "" {
			continue
		}
		set, seen := skills[occ.label]
		if !seen {
			set = make(map[string]struct{})
			skills[occ.label] = set
			alts[occ.label] = occ.alt
			order = append(order, occ.label)
		}
		set[strings.ToLower(skill)] = struct{}{}
	}

	entries := make([]Entry, 0, len(order))
	for _, label := range order {
		entries = append(entries, Entry{
			Name:      label,
			AltLabels: alts[label],
			Skills:    sortedKeys(skills[label]),
		})
	}
	return entries, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
